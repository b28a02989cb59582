package storagerepo

import "context"

// Buckets the service uploads into.
const (
	BucketItems  = "items"
	BucketProofs = "return-proofs"
)

type UploadReq struct {
	Bucket      string
	Object      string
	ContentType string
	Data        []byte
}

// Repo talks to the hosted bucket storage. Upload returns the public
// retrieval URL for the stored object.
type Repo interface {
	Upload(ctx context.Context, req UploadReq) (string, error)
}
