package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"

	// DefaultRegion keeps results scoped to products sold where the
	// user shops; untagged products pass the filter too.
	DefaultRegion = "en:united-states"

	searchFields = "product_name,brands,nutriments,serving_size,countries_tags"
)

type Nutrition struct {
	Kcal     float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type Product struct {
	Name        string
	Brand       string
	ServingSize string
	Per100g     Nutrition
	PerServing  Nutrition
}

func (p Product) HasPer100g() bool    { return p.Per100g.Kcal > 0 }
func (p Product) HasPerServing() bool { return p.PerServing.Kcal > 0 }

// Title composes the display name used when importing into the
// library, with the first listed brand in parentheses.
func (p Product) Title() string {
	if p.Brand == "" {
		return p.Name
	}
	brand := strings.TrimSpace(strings.SplitN(p.Brand, ",", 2)[0])
	if brand == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, brand)
}

type Client struct {
	BaseURL    string
	Region     string
	HTTPClient *http.Client
}

// SearchFoods runs a free-text product search, returning candidates in
// scope for the configured region. An empty result is not an error;
// only transport and decode failures are.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]Product, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	region := strings.TrimSpace(c.Region)
	if region == "" {
		region = DefaultRegion
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if limit <= 0 {
		limit = 20
	}

	u := fmt.Sprintf("%s/cgi/search.pl?search_simple=1&json=1&page_size=%d&fields=%s&search_terms=%s",
		base, limit, searchFields, url.QueryEscape(strings.TrimSpace(query)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts search request: %w", err)
	}
	req.Header.Set("User-Agent", "bulkbuddy/1.0 (terminal nutrition tracker)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts search request failed with status %d", resp.StatusCode)
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}

	out := make([]Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		if !inRegion(p.CountriesTags, region) {
			continue
		}
		out = append(out, Product{
			Name:        strings.TrimSpace(p.ProductName),
			Brand:       strings.TrimSpace(p.Brands),
			ServingSize: strings.TrimSpace(p.ServingSize),
			Per100g: Nutrition{
				Kcal:     kcalValue(p.Nutriments, "_100g"),
				ProteinG: nutrient(p.Nutriments, "proteins", "_100g"),
				CarbsG:   nutrient(p.Nutriments, "carbohydrates", "_100g"),
				FatG:     nutrient(p.Nutriments, "fat", "_100g"),
			},
			PerServing: Nutrition{
				Kcal:     kcalValue(p.Nutriments, "_serving"),
				ProteinG: nutrient(p.Nutriments, "proteins", "_serving"),
				CarbsG:   nutrient(p.Nutriments, "carbohydrates", "_serving"),
				FatG:     nutrient(p.Nutriments, "fat", "_serving"),
			},
		})
	}
	return out, nil
}

func inRegion(tags []string, region string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if t == region {
			return true
		}
	}
	return false
}

// kcalValue prefers the direct kilocalorie field and falls back to the
// kilojoule energy field divided by 4.184.
func kcalValue(n map[string]any, suffix string) float64 {
	if v, ok := floatValue(n["energy-kcal"+suffix]); ok {
		return v
	}
	if v, ok := floatValue(n["energy"+suffix]); ok {
		return math.Round(v / 4.184)
	}
	return 0
}

func nutrient(n map[string]any, base, suffix string) float64 {
	if v, ok := floatValue(n[base+suffix]); ok {
		return v
	}
	return 0
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offProduct struct {
	ProductName   string         `json:"product_name"`
	Brands        string         `json:"brands"`
	ServingSize   string         `json:"serving_size"`
	CountriesTags []string       `json:"countries_tags"`
	Nutriments    map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
