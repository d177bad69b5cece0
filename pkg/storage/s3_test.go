package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/pkg/storage"
)

type fakeS3 struct {
	objects   map[string][]byte
	deleteErr error
	lastPut   *s3.PutObjectInput
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3DiskLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	disk := storage.NewS3DiskWith(fake, "agro-docs", "https://cdn.example/")

	require.NoError(t, disk.Put(ctx, "1a.pdf", strings.NewReader("pdf"), 3, "application/pdf"))
	assert.Equal(t, "application/pdf", aws.ToString(fake.lastPut.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fake.lastPut.ContentLength))

	ok, err := disk.Exists(ctx, "1a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := disk.Open(ctx, "1a.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "pdf", string(data))

	require.NoError(t, disk.Delete(ctx, "1a.pdf"))
	ok, err = disk.Exists(ctx, "1a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = disk.Open(ctx, "1a.pdf")
	assert.ErrorIs(t, err, storage.ErrNotExist)
	assert.Equal(t, "https://cdn.example/1a.pdf", disk.URL("1a.pdf"))
}

func TestS3DiskBuffersNonSeekableBodies(t *testing.T) {
	fake := newFakeS3()
	disk := storage.NewS3DiskWith(fake, "b", "")

	require.NoError(t, disk.Put(context.Background(), "x.txt", io.MultiReader(strings.NewReader("ab"), strings.NewReader("c")), -1, ""))
	assert.Equal(t, int64(3), aws.ToInt64(fake.lastPut.ContentLength))
	assert.Equal(t, []byte("abc"), fake.objects["x.txt"])
}

func TestS3DiskDeleteFailure(t *testing.T) {
	fake := newFakeS3()
	fake.deleteErr = errors.New("AccessDenied")
	disk := storage.Instrument(storage.NewS3DiskWith(fake, "b", ""))

	err := disk.Delete(context.Background(), "1a.pdf")
	assert.ErrorContains(t, err, "AccessDenied")
}
