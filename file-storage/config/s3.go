package config

import "time"

// S3Config holds the settings of an S3 or S3-compatible bucket.
type S3Config struct {
	Limits
	Region    string `validate:"required"`
	Bucket    string `validate:"required"`
	Endpoint  string `validate:"omitempty,url"` // MinIO, R2, ...
	AccessKey string `validate:"required"`
	SecretKey string `validate:"required"`
	// PathPrefix is prepended to every key, e.g. "exports".
	PathPrefix             string
	PresignedURLExpiration time.Duration `validate:"gt=0"`
}

func (sc *S3Config) Driver() string {
	return "s3"
}

func (sc *S3Config) Validate() error {
	return validate(sc.Driver(), sc)
}
