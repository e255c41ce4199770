package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"civicmap/backend/metrics"
	"civicmap/backend/report"
)

// RemoteClient talks to the external image scoring service. The service is
// opaque: it receives the image plus text and answers with a category and a
// confidence. Any failure is soft and handled by the pipeline.
type RemoteClient struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

func NewRemoteClient(endpoint string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

type remoteResponse struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
}

// Classify posts a multipart payload {image, title, description} with a
// bounded deadline. The returned error marks a soft failure only; callers
// fall through to the next tier.
func (c *RemoteClient) Classify(ctx context.Context, image []byte, title, description string) (report.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if len(image) > 0 {
		fw, err := w.CreateFormFile("image", "image.jpg")
		if err != nil {
			return report.Classification{}, err
		}
		if _, err := fw.Write(image); err != nil {
			return report.Classification{}, err
		}
	}
	if err := w.WriteField("title", title); err != nil {
		return report.Classification{}, err
	}
	if err := w.WriteField("description", description); err != nil {
		return report.Classification{}, err
	}
	if err := w.Close(); err != nil {
		return report.Classification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return report.Classification{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.RemoteDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RemoteFailuresTotal.WithLabelValues("transport").Inc()
		return report.Classification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RemoteFailuresTotal.WithLabelValues("status").Inc()
		return report.Classification{}, fmt.Errorf("remote classifier returned %d", resp.StatusCode)
	}

	var rr remoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rr); err != nil {
		metrics.RemoteFailuresTotal.WithLabelValues("decode").Inc()
		return report.Classification{}, err
	}

	category, err := report.ParseCategory(rr.Category)
	if err != nil {
		metrics.RemoteFailuresTotal.WithLabelValues("category").Inc()
		return report.Classification{}, err
	}

	// Absent confidence defaults to 0.7, matching the service contract.
	confidence := 0.7
	if rr.Confidence != nil {
		confidence = *rr.Confidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return report.Classification{
		Category:   category,
		Confidence: confidence,
		Reason:     "remote classifier score",
		Provider:   report.ProviderRemote,
	}, nil
}
