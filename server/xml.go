package server

import (
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// Namespace is the XML namespace of S3 responses.
const Namespace = "http://s3.amazonaws.com/doc/2006-03-01/"

// MaxKeys is the page size reported in listings. Listings are never truncated.
const MaxKeys = 1000

// timeFormat is the ISO 8601 layout S3 uses for timestamps.
const timeFormat = "2006-01-02T15:04:05.000Z"

// ListBucketResult is the XML response for ListObjects (V1).
type ListBucketResult struct {
	XMLName        xml.Name        `xml:"ListBucketResult"`
	Xmlns          string          `xml:"xmlns,attr"`
	Name           string          `xml:"Name"`
	Prefix         string          `xml:"Prefix"`
	Marker         string          `xml:"Marker"`
	Delimiter      string          `xml:"Delimiter,omitempty"`
	MaxKeys        int             `xml:"MaxKeys"`
	EncodingType   string          `xml:"EncodingType,omitempty"`
	IsTruncated    bool            `xml:"IsTruncated"`
	Contents       []ObjectContent `xml:"Contents"`
	CommonPrefixes []CommonPrefix  `xml:"CommonPrefixes,omitempty"`
}

// ListBucketResultV2 is the XML response for ListObjectsV2.
type ListBucketResultV2 struct {
	XMLName        xml.Name        `xml:"ListBucketResult"`
	Xmlns          string          `xml:"xmlns,attr"`
	Name           string          `xml:"Name"`
	Prefix         string          `xml:"Prefix"`
	Delimiter      string          `xml:"Delimiter,omitempty"`
	MaxKeys        int             `xml:"MaxKeys"`
	KeyCount       int             `xml:"KeyCount"`
	EncodingType   string          `xml:"EncodingType,omitempty"`
	IsTruncated    bool            `xml:"IsTruncated"`
	Contents       []ObjectContent `xml:"Contents"`
	CommonPrefixes []CommonPrefix  `xml:"CommonPrefixes,omitempty"`
}

// ObjectContent is one object in a listing.
type ObjectContent struct {
	Key          string       `xml:"Key"`
	LastModified string       `xml:"LastModified"`
	ETag         string       `xml:"ETag"`
	Size         int64        `xml:"Size"`
	StorageClass string       `xml:"StorageClass"`
	Owner        *ObjectOwner `xml:"Owner,omitempty"`
}

// ObjectOwner is the owner of an object.
type ObjectOwner struct {
	ID          string `xml:"ID"`
	DisplayName string `xml:"DisplayName"`
}

// CommonPrefix is one rolled-up prefix in a listing.
type CommonPrefix struct {
	Prefix string `xml:"Prefix"`
}

// ListAllMyBucketsResult is the XML response for ListBuckets.
type ListAllMyBucketsResult struct {
	XMLName xml.Name    `xml:"ListAllMyBucketsResult"`
	Xmlns   string      `xml:"xmlns,attr"`
	Owner   ObjectOwner `xml:"Owner"`
	Buckets BucketList  `xml:"Buckets"`
}

// BucketList wraps the bucket entries of ListAllMyBucketsResult.
type BucketList struct {
	Buckets []BucketInfo `xml:"Bucket"`
}

// BucketInfo is one bucket in a ListBuckets response.
type BucketInfo struct {
	Name         string `xml:"Name"`
	CreationDate string `xml:"CreationDate"`
}

// LocationConstraint is the XML response for GetBucketLocation.
// An empty location means us-east-1.
type LocationConstraint struct {
	XMLName  xml.Name `xml:"LocationConstraint"`
	Xmlns    string   `xml:"xmlns,attr"`
	Location string   `xml:",chardata"`
}

// ErrorResponse is the XML body of an S3 error.
type ErrorResponse struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	Resource  string   `xml:"Resource,omitempty"`
	RequestID string   `xml:"RequestId"`
}

// encoder applies the requested encoding type to names in a response.
type encoder string

// encode escapes s when URL encoding was requested. Slashes are kept.
func (e encoder) encode(s string) string {
	if e != s3types.EncodingTypeURL {
		return s
	}
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}

func newObjectContent(e s3types.Entry, enc encoder, withOwner bool) ObjectContent {
	content := ObjectContent{
		Key:          enc.encode(e.Key),
		LastModified: formatTime(e.LastModified),
		ETag:         e.ETag,
		Size:         e.Size,
		StorageClass: e.StorageClass,
	}
	if withOwner {
		content.Owner = newObjectOwner(e.Owner)
	}
	return content
}

func newObjectOwner(o s3types.Owner) *ObjectOwner {
	return &ObjectOwner{
		ID:          strconv.FormatInt(o.ID, 10),
		DisplayName: o.DisplayName,
	}
}

func newCommonPrefixes(prefixes []string, enc encoder) []CommonPrefix {
	out := make([]CommonPrefix, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, CommonPrefix{Prefix: enc.encode(p)})
	}
	return out
}

// newListBucketResult renders a listing as a V1 response. V1 always reports
// owners.
func newListBucketResult(r *s3types.ListResult) *ListBucketResult {
	enc := encoder(r.EncodingType)

	contents := make([]ObjectContent, 0, len(r.Objects))
	for _, e := range r.Objects {
		contents = append(contents, newObjectContent(e, enc, true))
	}

	return &ListBucketResult{
		Xmlns:          Namespace,
		Name:           r.Bucket,
		Prefix:         enc.encode(r.Prefix),
		Delimiter:      enc.encode(r.Delimiter),
		MaxKeys:        MaxKeys,
		EncodingType:   r.EncodingType,
		Contents:       contents,
		CommonPrefixes: newCommonPrefixes(r.CommonPrefixes, enc),
	}
}

// newListBucketResultV2 renders a listing as a V2 response. Owners are only
// reported when fetchOwner is set.
func newListBucketResultV2(r *s3types.ListResult, fetchOwner bool) *ListBucketResultV2 {
	enc := encoder(r.EncodingType)

	contents := make([]ObjectContent, 0, len(r.Objects))
	for _, e := range r.Objects {
		contents = append(contents, newObjectContent(e, enc, fetchOwner))
	}

	return &ListBucketResultV2{
		Xmlns:          Namespace,
		Name:           r.Bucket,
		Prefix:         enc.encode(r.Prefix),
		Delimiter:      enc.encode(r.Delimiter),
		MaxKeys:        MaxKeys,
		KeyCount:       r.KeyCount,
		EncodingType:   r.EncodingType,
		Contents:       contents,
		CommonPrefixes: newCommonPrefixes(r.CommonPrefixes, enc),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
