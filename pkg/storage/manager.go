package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/holisticagro/agromart/config"
	"github.com/holisticagro/agromart/pkg/metrics"
)

// New builds the disk selected by cfg.Disk, instrumented with blob metrics.
func New(ctx context.Context, cfg config.StorageConfig) (Disk, error) {
	var (
		d   Disk
		err error
	)
	switch cfg.Disk {
	case "", "local":
		d, err = NewLocalDisk(cfg.LocalRoot, cfg.URL)
	case "s3":
		d, err = NewS3Disk(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q", cfg.Disk)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(d), nil
}

// Instrument counts every write, read and delete on d.
func Instrument(d Disk) Disk {
	return &instrumented{Disk: d}
}

type instrumented struct {
	Disk
}

func (i *instrumented) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	err := i.Disk.Put(ctx, name, r, size, contentType)
	metrics.ObserveBlob(i.Driver(), "put", err)
	return err
}

func (i *instrumented) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := i.Disk.Open(ctx, name)
	if err == ErrNotExist {
		metrics.ObserveBlob(i.Driver(), "open", nil)
	} else {
		metrics.ObserveBlob(i.Driver(), "open", err)
	}
	return rc, err
}

func (i *instrumented) Delete(ctx context.Context, name string) error {
	err := i.Disk.Delete(ctx, name)
	metrics.ObserveBlob(i.Driver(), "delete", err)
	return err
}
