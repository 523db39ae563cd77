package smsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/praneswara/polygreen/pkg/httpclient"
)

type Provider interface {
	Send(ctx context.Context, to string, text string) (res Response, err error)
}

type Config struct {
	Enable  bool          `mapstructure:"enable"`
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Sender  string        `mapstructure:"sender"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Response struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type SMSProvider struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewSMSProvider(cfg Config, client httpclient.HTTPClient) Provider {
	return &SMSProvider{cfg: cfg, client: client}
}

func (s *SMSProvider) Send(ctx context.Context, to string, text string) (Response, error) {
	payload, err := json.Marshal(sendRequest{From: s.cfg.Sender, To: to, Text: text})
	if err != nil {
		return Response{}, err
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + s.cfg.APIKey,
	}

	resp, err := s.client.Post(ctx, s.cfg.URL, bytes.NewReader(payload), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, errors.New(ErrorCodeTimeout)
		}

		return Response{}, errors.New(ErrorCodeNetworkError)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case 400:
			return Response{}, errors.New(ErrorCodeInvalidNumber)
		case 500, 502, 503, 504:
			return Response{}, errors.New(ErrorCodeServerError)
		default:
			return Response{}, errors.New(ErrorCodeServerError)
		}
	}

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Response{}, errors.New(ErrorCodeServerError)
	}

	return res, nil
}
