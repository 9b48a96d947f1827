package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr    error
	putBucket string
	putKey    string
	putBody   string
	putSize   int64
	putOpts   minioLib.PutObjectOptions
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, bucket, key string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putBucket, f.putKey, f.putBody, f.putSize, f.putOpts = bucket, key, string(body), size, opts
	return minioLib.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestNewArchiveWithAPI(t *testing.T) {
	tests := []struct {
		name       string
		api        *fakeMinio
		wantErr    string
		wantCreate bool
	}{
		{name: "bucket exists", api: &fakeMinio{bucketExists: true}},
		{name: "bucket created", api: &fakeMinio{}, wantCreate: true},
		{name: "exists check fails", api: &fakeMinio{bucketExistsErr: errors.New("boom")}, wantErr: "failed to check bucket existence"},
		{name: "create fails", api: &fakeMinio{makeBucketErr: errors.New("fail")}, wantErr: "failed to create bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewArchiveWithAPI(context.Background(), tt.api, "imports")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, a)
				assert.Contains(t, err.Error(), "failed to ensure bucket exists")
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "imports", a.bucket)
			if tt.wantCreate {
				assert.Equal(t, "imports", tt.api.madeBucket)
			} else {
				assert.Empty(t, tt.api.madeBucket)
			}
		})
	}
}

func TestArchive_Upload(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	a, err := NewArchiveWithAPI(context.Background(), api, "imports")
	require.NoError(t, err)

	body := "date,name,amount\n2024-01-01,Salary,1\n"
	err = a.Upload(context.Background(), "imports/u/1.csv", strings.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	assert.Equal(t, "imports", api.putBucket)
	assert.Equal(t, "imports/u/1.csv", api.putKey)
	assert.Equal(t, body, api.putBody)
	assert.Equal(t, int64(len(body)), api.putSize)
	assert.Equal(t, "text/csv", api.putOpts.ContentType)
}

func TestArchive_UploadError(t *testing.T) {
	api := &fakeMinio{bucketExists: true, putErr: errors.New("put fail")}
	a, err := NewArchiveWithAPI(context.Background(), api, "imports")
	require.NoError(t, err)

	err = a.Upload(context.Background(), "k", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload object")
}

func TestNewArchive_InvalidEndpoint(t *testing.T) {
	_, err := NewArchive(context.Background(), Options{Endpoint: "bad host/with/path", Bucket: "imports"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create minio client")
}
