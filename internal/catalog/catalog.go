package catalog

import (
	"strings"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

const (
	CategoryWomen = "women"
	CategoryKids  = "kids"
)

// Catalog is the read-only service list shared by every session.
type Catalog struct {
	services []models.Service
	synonyms []synonym
}

type synonym struct {
	key      string
	keywords []string
}

// Default returns the salon's catalog. Women's services come first so a key present
// in both categories resolves to the women's entry.
func Default() *Catalog {
	return &Catalog{
		services: []models.Service{
			{Key: "haircut", Category: CategoryWomen, Name: "Women's Haircut & Styling", Price: "₹400-1,200", Duration: "60 minutes"},
			{Key: "coloring", Category: CategoryWomen, Name: "Hair Coloring & Highlights", Price: "₹1,200-3,500", Duration: "120 minutes"},
			{Key: "treatment", Category: CategoryWomen, Name: "Hair Treatment & Spa", Price: "₹600-2,000", Duration: "90 minutes"},
			{Key: "bridal", Category: CategoryWomen, Name: "Bridal & Party Styling", Price: "₹800-2,500", Duration: "90 minutes"},
			{Key: "blowdry", Category: CategoryWomen, Name: "Professional Blowdry", Price: "₹250-600", Duration: "45 minutes"},
			{Key: "hairwash", Category: CategoryWomen, Name: "Hair Wash & Styling", Price: "₹200-450", Duration: "30 minutes"},
			{Key: "consultation", Category: CategoryWomen, Name: "Hair Consultation", Price: "₹150-300", Duration: "30 minutes"},
			{Key: "kids_haircut", Category: CategoryKids, Name: "Kids Haircuts", Price: "₹150-500", Duration: "30 minutes"},
			{Key: "party", Category: CategoryKids, Name: "Party Styling", Price: "₹200-600", Duration: "45 minutes"},
			{Key: "kids_hairwash", Category: CategoryKids, Name: "Kids Hair Wash", Price: "₹100-300", Duration: "20 minutes"},
			{Key: "braiding", Category: CategoryKids, Name: "Creative Braiding", Price: "₹150-400", Duration: "30 minutes"},
		},
		synonyms: []synonym{
			{key: "haircut", keywords: []string{"haircut", "cut", "trim"}},
			{key: "coloring", keywords: []string{"color", "coloring", "highlight", "dye"}},
			{key: "treatment", keywords: []string{"treatment", "spa", "keratin", "therapy"}},
			{key: "bridal", keywords: []string{"bridal", "wedding", "party", "styling"}},
			{key: "blowdry", keywords: []string{"blowdry", "blow dry", "style"}},
			{key: "hairwash", keywords: []string{"wash", "shampoo", "clean"}},
			{key: "consultation", keywords: []string{"consultation", "advice", "consult"}},
		},
	}
}

// Match returns the first service key whose keyword occurs in text.
func (c *Catalog) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, s := range c.synonyms {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.key, true
			}
		}
	}
	return "", false
}

func (c *Catalog) Lookup(key string) (models.Service, bool) {
	for _, s := range c.services {
		if s.Key == key {
			return s, true
		}
	}
	return models.Service{}, false
}

// Info is Lookup with the placeholder entry used when a key is unknown.
func (c *Catalog) Info(key string) models.Service {
	if s, ok := c.Lookup(key); ok {
		return s
	}
	return models.Service{Key: key, Name: "Service", Price: "Contact us", Duration: "Varies"}
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

func (c *Catalog) List() []models.Service {
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}
