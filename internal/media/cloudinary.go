package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"learnhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "learnhub",
		Subsystem: "media",
		Name:      "operations_total",
		Help:      "Media host calls by operation and result.",
	}, []string{"operation", "result"})

	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "learnhub",
		Subsystem: "media",
		Name:      "circuit_breaker_state",
		Help:      "Media host circuit breaker state (0 closed, 1 half-open, 2 open).",
	}, []string{"name"})
)

// CloudinaryStorage uploads and deletes assets on Cloudinary. Uploads retry
// with exponential backoff; both operations share one circuit breaker so a
// failing host is not hammered by every request.
type CloudinaryStorage struct {
	client  *cloudinary.Cloudinary
	breaker *gobreaker.CircuitBreaker[interface{}]
	logger  *zap.Logger

	maxRetries    uint64
	uploadTimeout time.Duration
	deleteTimeout time.Duration
}

// NewCloudinaryStorage builds a storage from credentials in cfg
func NewCloudinaryStorage(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryStorage, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	const name = "cloudinary"
	breakerState.WithLabelValues(name).Set(0)

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Media host circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(float64(to))
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})

	logger.Info("Cloudinary storage initialized", zap.String("cloud_name", cfg.CloudName))

	return &CloudinaryStorage{
		client:        cld,
		breaker:       breaker,
		logger:        logger,
		maxRetries:    cfg.MaxRetries,
		uploadTimeout: 10 * time.Minute,
		deleteTimeout: 30 * time.Second,
	}, nil
}

func ptrBool(b bool) *bool {
	return &b
}

// Upload sends src to the media host under opts.Folder
func (c *CloudinaryStorage) Upload(ctx context.Context, src io.ReadSeeker, opts UploadOptions) (*Asset, error) {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:         opts.Folder,
		UniqueFilename: ptrBool(true),
		ResourceType:   string(opts.Kind),
	}

	var result *uploader.UploadResult
	operation := func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(fmt.Errorf("unable to reset file position: %w", err))
		}
		res, err := c.client.Upload.Upload(ctx, src, params)
		if err != nil {
			return err
		}
		if res.Error.Message != "" {
			return errors.New(res.Error.Message)
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, backoff.RetryNotify(operation, policy, func(err error, d time.Duration) {
			c.logger.Warn("Upload attempt failed",
				zap.String("folder", opts.Folder),
				zap.String("filename", opts.Filename),
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		})
	})
	if err != nil {
		operationsTotal.WithLabelValues("upload", "failure").Inc()
		c.logger.Error("All upload attempts failed",
			zap.String("folder", opts.Folder),
			zap.String("filename", opts.Filename),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	operationsTotal.WithLabelValues("upload", "success").Inc()
	c.logger.Info("File uploaded successfully",
		zap.String("filename", opts.Filename),
		zap.String("public_id", result.PublicID),
		zap.Int("bytes", result.Bytes),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &Asset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Bytes:    result.Bytes,
	}, nil
}

// Delete removes an asset by public id. "not found" counts as success.
func (c *CloudinaryStorage) Delete(ctx context.Context, publicID string, kind Kind) error {
	ctx, cancel := context.WithTimeout(ctx, c.deleteTimeout)
	defer cancel()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		res, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     publicID,
			ResourceType: string(kind),
			Invalidate:   ptrBool(true),
		})
		if err != nil {
			return nil, err
		}
		if res.Error.Message != "" {
			return nil, errors.New(res.Error.Message)
		}
		switch res.Result {
		case "ok", "not found":
			return nil, nil
		default:
			return nil, fmt.Errorf("unexpected destroy result %q", res.Result)
		}
	})
	if err != nil {
		operationsTotal.WithLabelValues("delete", "failure").Inc()
		c.logger.Error("Failed to delete file",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	operationsTotal.WithLabelValues("delete", "success").Inc()
	c.logger.Debug("File deleted", zap.String("public_id", publicID))
	return nil
}
