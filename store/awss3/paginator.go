package awss3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/s3api"
)

// maxPageSize is the largest page S3 will return.
const maxPageSize = 1000

// paginator walks a flat ListObjectsV2 listing page by page.
type paginator struct {
	client            s3api.S3API
	bucket            string
	pageSize          int32
	continuationToken *string
	hasMorePages      bool
	firstPage         bool
}

func newPaginator(client s3api.S3API, bucket string, pageSize int32) *paginator {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &paginator{
		client:    client,
		bucket:    bucket,
		pageSize:  pageSize,
		firstPage: true,
	}
}

// HasMorePages returns true if there are more pages to fetch.
func (p *paginator) HasMorePages() bool {
	return p.firstPage || p.hasMorePages
}

// NextPage fetches the next page of objects.
func (p *paginator) NextPage(ctx context.Context) ([]types.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:     aws.String(p.bucket),
		MaxKeys:    aws.Int32(p.pageSize),
		FetchOwner: aws.Bool(true),
	}
	if !p.firstPage && p.continuationToken != nil {
		input.ContinuationToken = p.continuationToken
	}

	output, err := p.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list objects page: %w", err)
	}

	p.firstPage = false
	p.hasMorePages = aws.ToBool(output.IsTruncated) && output.NextContinuationToken != nil
	p.continuationToken = output.NextContinuationToken

	return output.Contents, nil
}
