// Package weather looks up observed daily weather for the wildlife area from
// the Open-Meteo historical archive.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

const (
	DefaultBaseURL   = "https://archive-api.open-meteo.com/v1/archive"
	DefaultLatitude  = 45.72
	DefaultLongitude = -122.82
	DefaultTimezone  = "America/Los_Angeles"

	dailyFields = "temperature_2m_min,temperature_2m_max,precipitation_sum,wind_direction_10m_dominant"
)

// Getter downloads a URL.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Config struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timezone  string
	Timeout   time.Duration
}

type Client struct {
	cfg    Config
	http   Getter
	logger *slog.Logger
}

func NewClient(cfg Config, getter Getter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	return &Client{cfg: cfg, http: getter, logger: logger}
}

type archiveResponse struct {
	Daily struct {
		Time    []string   `json:"time"`
		TempMin []*float64 `json:"temperature_2m_min"`
		TempMax []*float64 `json:"temperature_2m_max"`
		Precip  []*float64 `json:"precipitation_sum"`
		Wind    []*float64 `json:"wind_direction_10m_dominant"`
	} `json:"daily"`
}

// Daily returns the observations for the requested dates. It never fails:
// lookup errors are logged and dates without data are left out.
func (c *Client) Daily(ctx context.Context, dates []string) map[string]entity.Weather {
	out := make(map[string]entity.Weather)
	first, last, ok := utils.DateSpan(dates)
	if !ok {
		return out
	}
	if err := checkSpan(first, last); err != nil {
		c.logger.Warn("weather.dates.invalid", "start", first, "end", last, "error", err)
		return out
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.fetch(ctx, first, last)
	if err != nil {
		c.logger.Warn("weather.lookup.failed", "start", first, "end", last, "error", err)
		return out
	}

	want := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		want[d] = struct{}{}
	}
	for i, d := range resp.Daily.Time {
		if _, ok := want[d]; !ok {
			continue
		}
		w := entity.Weather{
			TempMinF:        at(resp.Daily.TempMin, i),
			TempMaxF:        at(resp.Daily.TempMax, i),
			PrecipitationIn: at(resp.Daily.Precip, i),
			WindBearing:     at(resp.Daily.Wind, i),
		}
		if !w.Empty() {
			out[d] = w
		}
	}
	c.logger.Info("weather.lookup.ok", "requested", len(dates), "found", len(out))
	return out
}

// Enrich attaches weather to the report's dates when any is available.
func (c *Client) Enrich(ctx context.Context, report *entity.Report) {
	if report == nil {
		return
	}
	if w := c.Daily(ctx, report.Dates); len(w) > 0 {
		report.Weather = w
	}
}

func (c *Client) fetch(ctx context.Context, start, end string) (*archiveResponse, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.cfg.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.cfg.Longitude, 'f', -1, 64))
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("daily", dailyFields)
	q.Set("temperature_unit", "fahrenheit")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", c.cfg.Timezone)

	raw, err := c.http.Get(ctx, c.cfg.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var resp archiveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode archive response: %w", err)
	}
	return &resp, nil
}

func at(vs []*float64, i int) *float64 {
	if i < 0 || i >= len(vs) {
		return nil
	}
	return vs[i]
}

func checkSpan(first, last string) error {
	start, err := utils.ParseYMD(first)
	if err != nil {
		return err
	}
	end, err := utils.ParseYMD(last)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end %s before start %s", last, first)
	}
	return nil
}
