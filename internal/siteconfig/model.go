package siteconfig

import (
	"maps"
	"slices"
	"time"
)

// TemplateType selects which business template renders a config.
type TemplateType string

const (
	TemplateProfessionals TemplateType = "professionals"
	TemplateRestaurants   TemplateType = "restaurants"
	TemplateTourism       TemplateType = "tourism"
	TemplateRetail        TemplateType = "retail"
	TemplateServices      TemplateType = "services"
)

// TemplateTypes lists every supported template in display order.
var TemplateTypes = []TemplateType{
	TemplateProfessionals,
	TemplateRestaurants,
	TemplateTourism,
	TemplateRetail,
	TemplateServices,
}

// Valid reports whether t is a known template. The empty type is allowed and
// means the site has not picked one yet.
func (t TemplateType) Valid() bool {
	return t == "" || slices.Contains(TemplateTypes, t)
}

const (
	DefaultLanguage        = "en"
	DefaultPrimaryColor    = "#00A859"
	DefaultSecondaryColor  = "#C8102E"
	DefaultBackgroundColor = "#FFFFFF"
)

// Text is a bilingual string.
type Text struct {
	En string `json:"en"`
	Es string `json:"es"`
}

type OfficeHours struct {
	MondayToFriday string `json:"mondayToFriday"`
	Saturday       string `json:"saturday"`
}

// Translations holds per-language UI string overrides keyed by message id.
type Translations struct {
	En map[string]string `json:"en"`
	Es map[string]string `json:"es"`
}

// BusinessService is one entry in the services section of a site.
type BusinessService struct {
	Icon        string `json:"icon"`
	Title       Text   `json:"title"`
	Description Text   `json:"description"`
}

type Review struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Rating   int    `json:"rating"`
	Date     Text   `json:"date"`
	Quote    Text   `json:"quote"`
}

type Photo struct {
	URL     string `json:"url"`
	Caption Text   `json:"caption"`
}

type Award struct {
	Icon        string `json:"icon"`
	Title       Text   `json:"title"`
	Description Text   `json:"description"`
}

type ChatbotQuestion struct {
	Key      string `json:"key"`
	Question Text   `json:"question"`
	Answer   Text   `json:"answer"`
}

// WebsiteConfig is everything a template needs to render one business site.
type WebsiteConfig struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	TemplateType TemplateType `json:"templateType"`
	Logo         string       `json:"logo"`

	DefaultLanguage      string `json:"defaultLanguage"`
	ShowWhyWebsiteButton bool   `json:"showWhyWebsiteButton"`
	ShowDomainButton     bool   `json:"showDomainButton"`
	ShowChatbot          bool   `json:"showChatbot"`

	WhatsappNumber  string      `json:"whatsappNumber"`
	WhatsappMessage string      `json:"whatsappMessage"`
	FacebookURL     string      `json:"facebookUrl"`
	GoogleMapsEmbed string      `json:"googleMapsEmbed"`
	Address         string      `json:"address"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	OfficeHours     OfficeHours `json:"officeHours"`
	AnalyticsCode   string      `json:"analyticsCode"`

	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`

	Translations     Translations      `json:"translations"`
	Services         []BusinessService `json:"services"`
	Reviews          []Review          `json:"reviews"`
	Photos           []Photo           `json:"photos"`
	Awards           []Award           `json:"awards"`
	ChatbotQuestions []ChatbotQuestion `json:"chatbotQuestions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns a config named name with the column defaults applied.
func New(name string) WebsiteConfig {
	return WebsiteConfig{
		Name:                 name,
		DefaultLanguage:      DefaultLanguage,
		ShowWhyWebsiteButton: true,
		ShowDomainButton:     true,
		ShowChatbot:          true,
		PrimaryColor:         DefaultPrimaryColor,
		SecondaryColor:       DefaultSecondaryColor,
		BackgroundColor:      DefaultBackgroundColor,
		Services:             []BusinessService{},
		Reviews:              []Review{},
		Photos:               []Photo{},
		Awards:               []Award{},
		ChatbotQuestions:     []ChatbotQuestion{},
	}
}

// Clone returns a deep copy so stores never share maps or slices with callers.
func (c WebsiteConfig) Clone() WebsiteConfig {
	out := c
	out.Translations = Translations{
		En: maps.Clone(c.Translations.En),
		Es: maps.Clone(c.Translations.Es),
	}
	out.Services = slices.Clone(c.Services)
	out.Reviews = slices.Clone(c.Reviews)
	out.Photos = slices.Clone(c.Photos)
	out.Awards = slices.Clone(c.Awards)
	out.ChatbotQuestions = slices.Clone(c.ChatbotQuestions)
	return out
}
