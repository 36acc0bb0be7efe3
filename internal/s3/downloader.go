// Package s3 предоставляет чтение датасета из Amazon S3 и совместимых хранилищ
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrObjectNotFound возвращается, если бакета или объекта нет
var ErrObjectNotFound = errors.New("объект S3 не найден")

// Config содержит настройки для S3
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// objectGetter подмножество клиента S3, нужное для чтения объектов
type objectGetter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// Downloader читает объекты из S3
type Downloader struct {
	client objectGetter
}

// NewDownloader создает клиента S3 по настройкам
func NewDownloader(config *Config) (*Downloader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}

	// Без ключей используется стандартная цепочка учетных данных AWS
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		)
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Downloader{client: s3.New(sess)}, nil
}

// Object содержит тело объекта и его размер
type Object struct {
	Body io.ReadCloser
	Size int64
}

// Open открывает объект для чтения
func (d *Downloader) Open(ctx context.Context, bucket, key string) (*Object, error) {
	out, err := d.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
				return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
			}
		}
		return nil, fmt.Errorf("ошибка чтения объекта из S3: %w", err)
	}

	return &Object{
		Body: out.Body,
		Size: aws.Int64Value(out.ContentLength),
	}, nil
}

// ParseURL разбирает адрес вида s3://bucket/key
func ParseURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("неверный URL: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("ожидалась схема s3, получено %q", u.Scheme)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("неверный формат URL S3: %s", raw)
	}
	return u.Host, key, nil
}
