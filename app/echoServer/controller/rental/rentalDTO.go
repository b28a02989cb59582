package rental

type CartLine struct {
	ItemID  int64  `json:"item_id" validate:"required,gt=0"`
	Qty     int64  `json:"qty" validate:"required,gte=1"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type CheckoutReq struct {
	Lines []CartLine `json:"lines" validate:"required,min=1,dive"`
}

type ReturnReq struct {
	ReturnQty int64  `json:"return_qty" validate:"required,gte=1"`
	BrokenQty int64  `json:"broken_qty" validate:"gte=0"`
	ProofURL  string `json:"proof_url" validate:"required"`
	Revision  int64  `json:"revision" validate:"gte=0"`
}

type ForceReturnReq struct {
	// Loss declares the whole outstanding quantity lost/broken instead of
	// restocking it.
	Loss bool `json:"loss"`
}
