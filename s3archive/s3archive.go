/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3archive stores tournament snapshots and cached web pages in
 * Amazon S3. The byte-level Get/Set/Delete methods satisfy httpcache.Cache so
 * the same bucket can back the roster importer's HTTP cache.
 */
package s3archive

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const (
	cachePrefix    = "s3cache"
	snapshotPrefix = "snapshots"
)

// ErrNotFound is returned by GetJSON when no object exists for the name.
var ErrNotFound = errors.New("archive object not found")

// ObjectAPI is the subset of the s3 client the archive uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Archive reads and writes objects in a single S3 bucket.
type Archive struct {
	// Client is used for object access. Init() sets it from the default AWS
	// configuration; callers may install their own before use instead.
	Client ObjectAPI

	bucketName string

	// gzip compresses objects on write and decompresses on read. Object keys
	// get a ".gz" suffix.
	gzip bool

	logErrors bool

	// ctx is used by the httpcache.Cache methods, which take no context.
	ctx context.Context
}

// New returns an Archive for bucketName. Call Init() before use unless a
// Client is supplied directly.
func New(ctx context.Context, bucketName string, gzipIn bool,
	logErrors bool) *Archive {

	return &Archive{
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzipIn,
		logErrors:  logErrors,
	}
}

// Init loads the default AWS configuration (environment variables, then the
// shared config and credentials files) and verifies the bucket is reachable
// and listable.
func (a *Archive) Init() error {
	cfg, err := config.LoadDefaultConfig(a.ctx)
	if err != nil {
		return fmt.Errorf("s3archive.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	if _, err = client.HeadBucket(a.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucketName),
	}); err != nil {
		return fmt.Errorf("s3archive.init: head bucket failed for %s: %w",
			a.bucketName, err)
	}
	if _, err = client.ListObjectsV2(a.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(a.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3archive.init: list objects failed for %s: %w",
			a.bucketName, err)
	}
	a.Client = client

	return nil
}

// Get returns the cached bytes for key.
func (a *Archive) Get(key string) ([]byte, bool) {
	data, err := a.read(a.ctx, a.cacheKeyToObjectKey(key))
	if err != nil {
		if a.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3archive.get: %v", err)
		}
		return []byte{}, false
	}
	return data, true
}

// Set stores data under key.
func (a *Archive) Set(key string, data []byte) {
	if err := a.write(a.ctx, a.cacheKeyToObjectKey(key), data); err != nil {
		if a.logErrors {
			log.Printf("s3archive.set: %v", err)
		}
	}
}

// Delete removes key.
func (a *Archive) Delete(key string) {
	objKey := a.cacheKeyToObjectKey(key)
	_, err := a.Client.DeleteObject(a.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil && a.logErrors {
		log.Printf("s3archive.delete: delete failed for %v%v: %v",
			a.bucketName, objKey, err)
	}
}

// PutJSON stores v as JSON under the snapshot key derived from name.
func (a *Archive) PutJSON(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("s3archive.put: failed to marshal %v: %w", name, err)
	}
	return a.write(ctx, a.SnapshotKey(name), data)
}

// GetJSON loads the object stored under name into v. It returns an error
// wrapping ErrNotFound when nothing has been stored.
func (a *Archive) GetJSON(ctx context.Context, name string, v any) error {
	data, err := a.read(ctx, a.SnapshotKey(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("s3archive.get: failed to parse %v: %w", name, err)
	}
	return nil
}

// SnapshotKey maps a tournament name to its object key.
func (a *Archive) SnapshotKey(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	slug = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, slug)
	objKey := path.Join(snapshotPrefix, slug+".json")
	if a.gzip {
		objKey += ".gz"
	}
	return objKey
}

func (a *Archive) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("/%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
	if a.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (a *Archive) read(ctx context.Context, objKey string) ([]byte, error) {
	resp, err := a.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %v%v", ErrNotFound, a.bucketName, objKey)
		}
		return nil, fmt.Errorf("failed to get object %v%v: %w", a.bucketName,
			objKey, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if a.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed object %v%v: %w",
				a.bucketName, objKey, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %v%v: %w", a.bucketName,
			objKey, err)
	}

	return data, nil
}

func (a *Archive) write(ctx context.Context, objKey string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if a.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data for %v%v: %w", a.bucketName,
				objKey, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer for %v%v: %w",
				a.bucketName, objKey, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := a.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put failed for %v%v: %w", a.bucketName, objKey, err)
	}
	return nil
}
