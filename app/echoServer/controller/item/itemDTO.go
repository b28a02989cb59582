package item

type CreateItemReq struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	TotalQty int64   `json:"total_qty" validate:"required,gte=1"`
}

type UpdateItemReq struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	TotalQty int64   `json:"total_qty" validate:"required,gte=1"`
}
