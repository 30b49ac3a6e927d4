package siteconfig

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Input is a partial config. A nil field leaves the current value alone.
// Lists are replaced wholesale; translations merge per key and an empty
// string removes the key.
type Input struct {
	Name         *string       `json:"name,omitempty" yaml:"name,omitempty"`
	TemplateType *TemplateType `json:"templateType,omitempty" yaml:"templateType,omitempty"`
	Logo         *string       `json:"logo,omitempty" yaml:"logo,omitempty"`

	DefaultLanguage      *string `json:"defaultLanguage,omitempty" yaml:"defaultLanguage,omitempty"`
	ShowWhyWebsiteButton *bool   `json:"showWhyWebsiteButton,omitempty" yaml:"showWhyWebsiteButton,omitempty"`
	ShowDomainButton     *bool   `json:"showDomainButton,omitempty" yaml:"showDomainButton,omitempty"`
	ShowChatbot          *bool   `json:"showChatbot,omitempty" yaml:"showChatbot,omitempty"`

	WhatsappNumber  *string      `json:"whatsappNumber,omitempty" yaml:"whatsappNumber,omitempty"`
	WhatsappMessage *string      `json:"whatsappMessage,omitempty" yaml:"whatsappMessage,omitempty"`
	FacebookURL     *string      `json:"facebookUrl,omitempty" yaml:"facebookUrl,omitempty"`
	GoogleMapsEmbed *string      `json:"googleMapsEmbed,omitempty" yaml:"googleMapsEmbed,omitempty"`
	Address         *string      `json:"address,omitempty" yaml:"address,omitempty"`
	Phone           *string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email           *string      `json:"email,omitempty" yaml:"email,omitempty"`
	OfficeHours     *OfficeHours `json:"officeHours,omitempty" yaml:"officeHours,omitempty"`
	AnalyticsCode   *string      `json:"analyticsCode,omitempty" yaml:"analyticsCode,omitempty"`

	PrimaryColor    *string `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty"`
	SecondaryColor  *string `json:"secondaryColor,omitempty" yaml:"secondaryColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`

	Translations     *Translations      `json:"translations,omitempty" yaml:"translations,omitempty"`
	Services         *[]BusinessService `json:"services,omitempty" yaml:"services,omitempty"`
	Reviews          *[]Review          `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Photos           *[]Photo           `json:"photos,omitempty" yaml:"photos,omitempty"`
	Awards           *[]Award           `json:"awards,omitempty" yaml:"awards,omitempty"`
	ChatbotQuestions *[]ChatbotQuestion `json:"chatbotQuestions,omitempty" yaml:"chatbotQuestions,omitempty"`
}

// Apply returns cfg with every non-nil field of in written over it.
// cfg itself is not modified.
func Apply(cfg WebsiteConfig, in Input) WebsiteConfig {
	out := cfg.Clone()

	setString(&out.Name, in.Name)
	if in.TemplateType != nil {
		out.TemplateType = *in.TemplateType
	}
	setString(&out.Logo, in.Logo)

	setString(&out.DefaultLanguage, in.DefaultLanguage)
	setBool(&out.ShowWhyWebsiteButton, in.ShowWhyWebsiteButton)
	setBool(&out.ShowDomainButton, in.ShowDomainButton)
	setBool(&out.ShowChatbot, in.ShowChatbot)

	setString(&out.WhatsappNumber, in.WhatsappNumber)
	setString(&out.WhatsappMessage, in.WhatsappMessage)
	setString(&out.FacebookURL, in.FacebookURL)
	setString(&out.GoogleMapsEmbed, in.GoogleMapsEmbed)
	setString(&out.Address, in.Address)
	setString(&out.Phone, in.Phone)
	setString(&out.Email, in.Email)
	if in.OfficeHours != nil {
		out.OfficeHours = *in.OfficeHours
	}
	setString(&out.AnalyticsCode, in.AnalyticsCode)

	setString(&out.PrimaryColor, in.PrimaryColor)
	setString(&out.SecondaryColor, in.SecondaryColor)
	setString(&out.BackgroundColor, in.BackgroundColor)

	if in.Translations != nil {
		out.Translations.En = mergeStrings(out.Translations.En, in.Translations.En)
		out.Translations.Es = mergeStrings(out.Translations.Es, in.Translations.Es)
	}
	setList(&out.Services, in.Services)
	setList(&out.Reviews, in.Reviews)
	setList(&out.Photos, in.Photos)
	setList(&out.Awards, in.Awards)
	setList(&out.ChatbotQuestions, in.ChatbotQuestions)

	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setList[T any](dst *[]T, v *[]T) {
	if v == nil {
		return
	}
	if *v == nil {
		*dst = []T{}
		return
	}
	*dst = slices.Clone(*v)
}

func mergeStrings(base, patch map[string]string) map[string]string {
	if len(patch) == 0 {
		return base
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(patch))
	}
	for k, v := range patch {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var supportedLanguages = []string{"en", "es"}

// Validate checks the invariants every stored config must hold.
// All problems are reported together.
func Validate(cfg WebsiteConfig) error {
	var problems []string

	if strings.TrimSpace(cfg.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !cfg.TemplateType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown template type %q", cfg.TemplateType))
	}
	if !slices.Contains(supportedLanguages, cfg.DefaultLanguage) {
		problems = append(problems, fmt.Sprintf("default language must be one of %s", strings.Join(supportedLanguages, ", ")))
	}

	colors := []struct {
		field string
		value string
	}{
		{"primaryColor", cfg.PrimaryColor},
		{"secondaryColor", cfg.SecondaryColor},
		{"backgroundColor", cfg.BackgroundColor},
	}
	for _, c := range colors {
		if !colorPattern.MatchString(c.value) {
			problems = append(problems, fmt.Sprintf("%s must look like #RRGGBB, got %q", c.field, c.value))
		}
	}

	for i, r := range cfg.Reviews {
		if r.Rating < 1 || r.Rating > 5 {
			problems = append(problems, fmt.Sprintf("reviews[%d].rating must be between 1 and 5", i))
		}
	}
	for i, p := range cfg.Photos {
		if strings.TrimSpace(p.URL) == "" {
			problems = append(problems, fmt.Sprintf("photos[%d].url is required", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
