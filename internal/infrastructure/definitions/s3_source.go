package definitions

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BrandoCommando/product-taxonomy/internal/application/ports"
	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
)

var _ ports.DefinitionSource = (*S3Source)(nil)

// ObjectAPI subconjunto del cliente S3 que usa la fuente.
type ObjectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source lee la misma estructura que FSSource bajo un prefijo de un bucket.
type S3Source struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewS3Source construye la fuente con un cliente ya configurado.
func NewS3Source(client ObjectAPI, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// NewS3SourceFromConfig crea el cliente S3. Sin S3_ACCESS_KEY_ID usa la cadena de
// credenciales por defecto. S3_ENDPOINT y S3_PATH_STYLE permiten apuntar a MinIO u otro compatible.
func NewS3SourceFromConfig(ctx context.Context, cfg config.SourceConfig) (*S3Source, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET requerido para DATA_SOURCE=s3")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return NewS3Source(client, cfg.S3Bucket, cfg.S3Prefix), nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Properties lee attributes/attributes.yml bajo el prefijo.
func (s *S3Source) Properties(ctx context.Context) ([]serializer.Raw, error) {
	key := s.key(propertiesFile)
	data, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}
	return parseList(key, data)
}

// CategoryFiles lista categories/ con paginación y lee cada objeto en orden de clave.
func (s *S3Source) CategoryFiles(ctx context.Context) ([][]serializer.Raw, error) {
	dir := s.key(categoriesDir) + "/"
	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(dir),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listar s3://%s/%s: %w", s.bucket, dir, err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			// Solo archivos directamente bajo categories/.
			if path.Dir(k)+"/" == dir && isCategoryFile(k) {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	files := make([][]serializer.Raw, 0, len(keys))
	for _, k := range keys {
		data, err := s.read(ctx, k)
		if err != nil {
			return nil, err
		}
		list, err := parseList(k, data)
		if err != nil {
			return nil, err
		}
		files = append(files, list)
	}
	return files, nil
}

func (s *S3Source) read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("leer s3://%s/%s: %w", s.bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("leer s3://%s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}
