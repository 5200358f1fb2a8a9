package content

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Category groups condition hubs on the listing page.
type Category string

const (
	CategoryGut      Category = "Gut & Digestion"
	CategoryHormones Category = "Hormones & Fertility"
	CategoryBrain    Category = "Brain & Mood"
	CategoryDetox    Category = "Detox & Toxicity"
	CategorySkin     Category = "Skin"
	CategoryHeart    Category = "Heart & Metabolic"
	CategoryWomens   Category = "Women's Health"
	CategoryOther    Category = "Other"

	// CategoryAll matches every condition. It is never stored on a record.
	CategoryAll Category = "All"
)

// CategoryOrder is the order groups appear in on the conditions listing.
var CategoryOrder = []Category{
	CategoryGut,
	CategoryDetox,
	CategoryHormones,
	CategoryBrain,
	CategoryHeart,
	CategorySkin,
	CategoryWomens,
	CategoryOther,
}

// FilterCategories is the order of the category chips, starting with All.
var FilterCategories = []Category{
	CategoryAll,
	CategoryGut,
	CategoryHormones,
	CategoryBrain,
	CategoryDetox,
	CategorySkin,
	CategoryHeart,
	CategoryWomens,
	CategoryOther,
}

// Valid reports whether c is one of the record categories.
func (c Category) Valid() bool {
	for _, k := range CategoryOrder {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory maps a query value onto a filter category. Unknown or empty
// values select CategoryAll.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryAll
}

// FAQ is a single question/answer pair shown in the accordion.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// SymptomGroups holds symptoms by body system. Nil slices mean the group is
// not described for the condition.
type SymptomGroups struct {
	BrainAndMood      []string `yaml:"brain_and_mood"`
	EnergyAndSleep    []string `yaml:"energy_and_sleep"`
	SinusAndBreathing []string `yaml:"sinus_and_breathing"`
	GutAndDigestion   []string `yaml:"gut_and_digestion"`
	Other             []string `yaml:"other"`
}

// ConditionHub describes one health condition and links to care, labs and blog content.
type ConditionHub struct {
	Slug             string         `yaml:"slug"`
	Name             string         `yaml:"name"`
	ShortName        string         `yaml:"short_name"`
	Description      string         `yaml:"description"`
	SEOSummary       string         `yaml:"seo_summary"`
	Category         Category       `yaml:"category"`
	IsOverview       bool           `yaml:"is_overview"`
	RelatedSlugs     []string       `yaml:"related_slugs"`
	PrimaryCareSlug  string         `yaml:"primary_care_slug"`
	PrimaryLabSlug   string         `yaml:"primary_lab_slug"` // optional
	FAQ              []FAQ          `yaml:"faq"`
	RelatedBlogSlugs []string       `yaml:"related_blog_slugs"`
	CommonSymptoms   *SymptomGroups `yaml:"common_symptoms"` // optional
	Causes           []string       `yaml:"causes"`
	RiskFactors      []string       `yaml:"risk_factors"`
	WhoItAffects     string         `yaml:"who_it_affects"`
	WhenToGetHelp    string         `yaml:"when_to_get_help"`
}

// BlogPost is an article attached to a primary condition.
type BlogPost struct {
	Slug                 string   `yaml:"slug"`
	Title                string   `yaml:"title"`
	Author               string   `yaml:"author"`
	ReviewedBy           string   `yaml:"reviewed_by"` // optional
	PublishedDate        Date     `yaml:"published_date"`
	PrimaryConditionSlug string   `yaml:"primary_condition_slug"`
	TLDRBullets          []string `yaml:"tldr_bullets"`
	BodyHTML             string   `yaml:"body_html"`
	BodyMarkdown         string   `yaml:"body_markdown"`
}

// CareService is a clinical offering and the conditions it addresses.
type CareService struct {
	Slug                 string   `yaml:"slug"`
	Name                 string   `yaml:"name"`
	HeroCopy             string   `yaml:"hero_copy"`
	WhoItHelpsConditions []string `yaml:"who_it_helps_conditions"`
}

// LabsPanel is a purchasable diagnostic test bundle.
type LabsPanel struct {
	Slug                 string   `yaml:"slug"`
	Name                 string   `yaml:"name"`
	Price                string   `yaml:"price"`
	Description          string   `yaml:"description"`
	RelatedConditionSlug string   `yaml:"related_condition_slug"`
	Biomarkers           []string `yaml:"biomarkers"`
	RecommendedIf        []string `yaml:"recommended_if"`
}

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Long formats the date for display, e.g. "January 15, 2024".
func (d Date) Long() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("January 2, 2006")
}

// UnmarshalYAML accepts a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid date %q, use YYYY-MM-DD", value.Line, value.Value)
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the date as YYYY-MM-DD.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
