package invoice

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func getAWSUploader(ctx context.Context) (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// Archive keeps a copy of the generated invoice in S3. Best-effort: any
// failure is logged and the caller continues without the archive.
func Archive(ctx context.Context, orderID uint, pdf []byte) {
	bucket := os.Getenv("INVOICE_BUCKET")
	if bucket == "" || len(pdf) == 0 {
		return
	}

	uploader, err := getAWSUploader(ctx)
	if err != nil {
		log.Printf("Invoice archive for order %d skipped: %v", orderID, err)
		return
	}

	key := fmt.Sprintf("invoices/invoice-%d.pdf", orderID)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		log.Printf("Invoice archive upload for order %d failed: %v", orderID, err)
	}
}
