// Package files turns file references returned by the API (profile images,
// identity documents) into fetchable URLs and saves them locally.
package files

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrEmptyRef = errors.New("empty file reference")

const s3Scheme = "s3"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Config configures presigning when the uploads base is s3://bucket/prefix.
type S3Config struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Expires      time.Duration
}

// Target is a resolved reference. Presigned URLs carry their own
// credentials and must not get the admin bearer token.
type Target struct {
	URL       string
	Presigned bool
}

type Resolver struct {
	base *url.URL
	s3   S3Config

	once      sync.Once
	presigner *s3.PresignClient
	err       error
}

// NewResolver accepts an http(s) uploads base or s3://bucket/prefix.
func NewResolver(uploadsBase string, s3cfg S3Config) (*Resolver, error) {
	u, err := url.Parse(strings.TrimRight(uploadsBase, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse uploads base: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
	case s3Scheme:
		if u.Host == "" {
			return nil, fmt.Errorf("parse uploads base: %q has no bucket", uploadsBase)
		}
	default:
		return nil, fmt.Errorf("parse uploads base: unsupported scheme %q", u.Scheme)
	}
	if s3cfg.Expires == 0 {
		s3cfg.Expires = 15 * time.Minute
	}
	return &Resolver{base: u, s3: s3cfg}, nil
}

// Resolve maps ref to a URL. Absolute http(s) references are returned as
// they are; s3:// references and references relative to an s3 uploads base
// are presigned; other relative references are joined to the uploads base.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Target, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Target{}, ErrEmptyRef
	}

	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		switch u.Scheme {
		case "http", "https":
			return Target{URL: ref}, nil
		case s3Scheme:
			return r.presign(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
		default:
			return Target{}, fmt.Errorf("file reference %q: unsupported scheme %q", ref, u.Scheme)
		}
	}

	rel := r.relative(ref)
	if r.base.Scheme == s3Scheme {
		return r.presign(ctx, r.base.Host, path.Join(strings.TrimPrefix(r.base.Path, "/"), rel))
	}

	u := *r.base
	u.Path = path.Join(u.Path, rel)
	u.RawPath = ""
	return Target{URL: u.String()}, nil
}

// relative strips leading slashes and a repeated last segment of the base
// path, so "/uploads/ids/a.png" against ".../uploads" is not doubled.
func (r *Resolver) relative(ref string) string {
	ref = strings.TrimLeft(ref, "/")
	last := path.Base(r.base.Path)
	if last != "." && last != "/" {
		ref = strings.TrimPrefix(ref, last+"/")
	}
	return ref
}

func (r *Resolver) presign(ctx context.Context, bucket, key string) (Target, error) {
	pc, err := r.presignClient()
	if err != nil {
		return Target{}, fmt.Errorf("s3 presign client: %w", err)
	}
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.s3.Expires))
	if err != nil {
		return Target{}, fmt.Errorf("presign s3://%s/%s: %w", bucket, key, err)
	}
	return Target{URL: req.URL, Presigned: true}, nil
}

func (r *Resolver) presignClient() (*s3.PresignClient, error) {
	r.once.Do(func() {
		opts := []func(*config.LoadOptions) error{config.WithRegion(r.s3.Region)}
		if r.s3.AccessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(r.s3.AccessKey, r.s3.SecretKey, "")))
		}
		cfg, err := loadDefaultAWSConfig(context.Background(), opts...)
		if err != nil {
			r.err = err
			return
		}
		c := newS3ClientFromConfig(cfg, func(o *s3.Options) {
			if r.s3.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(r.s3.BaseEndpoint)
				o.UsePathStyle = true
			}
		})
		r.presigner = newS3PresignClient(c)
	})
	return r.presigner, r.err
}
