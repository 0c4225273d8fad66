package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/umputun/feedmaker/pkg/domain"
)

// FeedFileName is the per-feed configuration file inside the feed directory
const FeedFileName = "conf.json"

// DefaultCaptureScript is used when item_capture_script is not set
const DefaultCaptureScript = "capture_item_link_title"

// FeedFile is the layout of conf.json
type FeedFile struct {
	Configuration FeedConfig `json:"configuration" jsonschema:"required"`
}

// FeedConfig holds the configuration of a single feed
type FeedConfig struct {
	Collection CollectionConfig `json:"collection" jsonschema:"required,description=List page collection settings"`
	Extraction ExtractionConfig `json:"extraction" jsonschema:"required,description=Item extraction settings"`
	RSS        RSSConfig        `json:"rss" jsonschema:"required,description=Channel metadata of the emitted feed"`
}

// CollectionConfig holds list collection settings
type CollectionConfig struct {
	ListURLList           []string          `json:"list_url_list" jsonschema:"required,description=List pages crawled in order"`
	ItemCaptureScript     string            `json:"item_capture_script,omitempty" jsonschema:"description=Script turning list html into link<TAB>title lines"`
	PostProcessScriptList []string          `json:"post_process_script_list,omitempty" jsonschema:"description=Scripts applied to captured lines in order"`
	ElementIDList         []string          `json:"element_id_list,omitempty" jsonschema:"description=Ids of list page elements to capture from"`
	ElementClassList      []string          `json:"element_class_list,omitempty" jsonschema:"description=Classes of list page elements to capture from"`
	ElementPathList       []string          `json:"element_path_list,omitempty" jsonschema:"description=Element paths of list page elements to capture from"`
	IgnoreOldList         bool              `json:"ignore_old_list,omitempty" jsonschema:"description=Emit only the latest crawl"`
	IsCompleted           bool              `json:"is_completed,omitempty" jsonschema:"description=Source is a finished archive revealed over time"`
	SortFieldPattern      string            `json:"sort_field_pattern,omitempty" jsonschema:"description=Regex with one or two capture groups producing the sort key from the link"`
	UnitSizePerDay        float64           `json:"unit_size_per_day,omitempty" jsonschema:"default=1,description=Archive items revealed per day"`
	WindowSize            int               `json:"window_size,omitempty" jsonschema:"default=10,description=Archive items emitted at once"`
	MaxItems              int               `json:"max_items,omitempty" jsonschema:"default=200,description=Maximum items in an incremental feed"`
	UserAgent             string            `json:"user_agent,omitempty"`
	Encoding              string            `json:"encoding,omitempty" jsonschema:"default=utf-8"`
	RenderJS              bool              `json:"render_js,omitempty"`
	VerifySSL             bool              `json:"verify_ssl" jsonschema:"default=true"`
	Timeout               int               `json:"timeout,omitempty" jsonschema:"default=30,description=Request timeout in seconds"`
	Headers               map[string]string `json:"headers,omitempty"`
}

// ExtractionConfig holds item extraction settings
type ExtractionConfig struct {
	ElementIDList             []string          `json:"element_id_list,omitempty"`
	ElementClassList          []string          `json:"element_class_list,omitempty"`
	ElementPathList           []string          `json:"element_path_list,omitempty"`
	PostProcessScriptList     []string          `json:"post_process_script_list,omitempty" jsonschema:"description=Scripts applied to the extracted html, the item link is passed as the last argument"`
	BypassElementExtraction   bool              `json:"bypass_element_extraction,omitempty" jsonschema:"description=Skip element selection and use the whole page"`
	ForceSleepBetweenArticles bool              `json:"force_sleep_between_articles,omitempty" jsonschema:"description=Pause one second between freshly fetched items"`
	UserAgent                 string            `json:"user_agent,omitempty"`
	Encoding                  string            `json:"encoding,omitempty" jsonschema:"default=utf-8"`
	RenderJS                  bool              `json:"render_js,omitempty"`
	VerifySSL                 bool              `json:"verify_ssl" jsonschema:"default=true"`
	Timeout                   int               `json:"timeout,omitempty" jsonschema:"default=30,description=Request timeout in seconds"`
	Headers                   map[string]string `json:"headers,omitempty"`
}

// RSSConfig holds channel metadata
type RSSConfig struct {
	Title            string `json:"title" jsonschema:"required"`
	Description      string `json:"description,omitempty"`
	Generator        string `json:"generator,omitempty"`
	Copyright        string `json:"copyright,omitempty"`
	Link             string `json:"link,omitempty"`
	Language         string `json:"language,omitempty"`
	URLPrefixForGUID string `json:"url_prefix_for_guid,omitempty" jsonschema:"description=When set guid is this prefix plus the item url path"`
}

// defaultFeedConfig returns config with defaults, json decoding keeps them for absent keys
func defaultFeedConfig() FeedConfig {
	return FeedConfig{
		Collection: CollectionConfig{
			ItemCaptureScript: DefaultCaptureScript,
			UnitSizePerDay:    1,
			WindowSize:        10,
			MaxItems:          200,
			Encoding:          "utf-8",
			VerifySSL:         true,
			Timeout:           30,
		},
		Extraction: ExtractionConfig{
			Encoding:  "utf-8",
			VerifySSL: true,
			Timeout:   30,
		},
	}
}

// LoadFeedConfig reads and validates conf.json of the feed directory
func LoadFeedConfig(feedDir string) (*FeedConfig, error) {
	data, err := os.ReadFile(filepath.Join(feedDir, FeedFileName)) //nolint:gosec // path built by the engine
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", FeedFileName, err, domain.ErrConfigInvalid)
	}
	return ParseFeedConfig(data)
}

// ParseFeedConfig decodes conf.json content, unknown keys are ignored.
// Missing collection, extraction or rss objects and invalid values fail with domain.ErrConfigInvalid.
func ParseFeedConfig(data []byte) (*FeedConfig, error) {
	var raw struct {
		Configuration map[string]json.RawMessage `json:"configuration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", FeedFileName, err, domain.ErrConfigInvalid)
	}
	if raw.Configuration == nil {
		return nil, fmt.Errorf("no configuration object: %w", domain.ErrConfigInvalid)
	}

	cfg := defaultFeedConfig()
	sections := []struct {
		name string
		dst  any
	}{
		{"collection", &cfg.Collection},
		{"extraction", &cfg.Extraction},
		{"rss", &cfg.RSS},
	}
	for _, s := range sections {
		msg, ok := raw.Configuration[s.name]
		if !ok || string(msg) == "null" {
			return nil, fmt.Errorf("no %s object: %w", s.name, domain.ErrConfigInvalid)
		}
		if err := json.Unmarshal(msg, s.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %v: %w", s.name, err, domain.ErrConfigInvalid)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrConfigInvalid)
	}
	return &cfg, nil
}

func (c *FeedConfig) validate() error {
	if len(c.Collection.ListURLList) == 0 {
		return fmt.Errorf("collection.list_url_list is empty")
	}
	for _, u := range c.Collection.ListURLList {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("collection.list_url_list has invalid url %q", u)
		}
	}
	if c.Collection.UnitSizePerDay < 0 {
		return fmt.Errorf("collection.unit_size_per_day must be non-negative")
	}
	if c.Collection.WindowSize < 1 {
		return fmt.Errorf("collection.window_size must be at least 1")
	}
	if _, err := c.SortPattern(); err != nil {
		return err
	}
	return nil
}

// SortPattern compiles sort_field_pattern, nil if not set. More than two capture groups is an error.
func (c *FeedConfig) SortPattern() (*regexp.Regexp, error) {
	if c.Collection.SortFieldPattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Collection.SortFieldPattern)
	if err != nil {
		return nil, fmt.Errorf("collection.sort_field_pattern: %w", err)
	}
	if re.NumSubexp() > 2 {
		return nil, fmt.Errorf("collection.sort_field_pattern has %d capture groups, at most 2 allowed", re.NumSubexp())
	}
	return re, nil
}

// RequestTimeout returns the per-request timeout of list fetches
func (c CollectionConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RequestTimeout returns the per-request timeout of item fetches
func (c ExtractionConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
