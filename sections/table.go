package sections

// descriptor is the single table entry every variant needs: a zero value for
// decoding and the documented defaults for creation.
type descriptor struct {
	label    string
	zero     func() Section
	defaults func() Section
}

var table = map[Variant]descriptor{
	VariantHero: {
		label: "Hero banner",
		zero:  func() Section { return &Hero{Base: newBase(VariantHero)} },
		defaults: func() Section {
			return &Hero{
				Base:         newBase(VariantHero),
				Title:        "Welcome to our site",
				Description:  "Tell visitors what makes you different.",
				ButtonText:   "Get Started",
				ButtonURL:    "#",
				OverlayColor: "rgba(0,0,0,0.4)",
				Alignment:    "center",
				Height:       "80vh",
			}
		},
	},
	VariantText: {
		label: "Text",
		zero:  func() Section { return &Text{Base: newBase(VariantText)} },
		defaults: func() Section {
			return &Text{
				Base:      newBase(VariantText),
				Content:   "Start writing your content here.",
				Alignment: "left",
			}
		},
	},
	VariantImage: {
		label: "Image",
		zero:  func() Section { return &Image{Base: newBase(VariantImage)} },
		defaults: func() Section {
			return &Image{Base: newBase(VariantImage), Width: "100%"}
		},
	},
	VariantVideo: {
		label: "Video",
		zero:  func() Section { return &Video{Base: newBase(VariantVideo)} },
		defaults: func() Section {
			return &Video{Base: newBase(VariantVideo), Controls: true}
		},
	},
	VariantGallery: {
		label: "Gallery",
		zero:  func() Section { return &Gallery{Base: newBase(VariantGallery)} },
		defaults: func() Section {
			return &Gallery{Base: newBase(VariantGallery), Images: []GalleryImage{}, Columns: 3, Lightbox: true}
		},
	},
	VariantSlider: {
		label: "Slider",
		zero:  func() Section { return &Slider{Base: newBase(VariantSlider)} },
		defaults: func() Section {
			return &Slider{
				Base:       newBase(VariantSlider),
				Slides:     []Slide{},
				Autoplay:   true,
				Interval:   defaultSliderInterval,
				ShowArrows: true,
				ShowDots:   true,
			}
		},
	},
	VariantAdvancedSlider: {
		label: "Advanced slider",
		zero:  func() Section { return &AdvancedSlider{Base: newBase(VariantAdvancedSlider)} },
		defaults: func() Section {
			return &AdvancedSlider{
				Base:       newBase(VariantAdvancedSlider),
				Slides:     []Slide{},
				Autoplay:   true,
				Interval:   defaultSliderInterval,
				Loop:       true,
				Transition: "fade",
				Height:     "60vh",
			}
		},
	},
	VariantFeatureCardGrid: {
		label: "Feature cards",
		zero:  func() Section { return &FeatureCardGrid{Base: newBase(VariantFeatureCardGrid)} },
		defaults: func() Section {
			return &FeatureCardGrid{
				Base:  newBase(VariantFeatureCardGrid),
				Title: "Features",
				Cards: []Card{
					{Title: "Fast", Description: "Pages load in the blink of an eye.", MediaType: MediaImage},
					{Title: "Flexible", Description: "Arrange blocks however you like.", MediaType: MediaImage},
					{Title: "Friendly", Description: "Edit content right on the page.", MediaType: MediaImage},
				},
				Columns: 3,
			}
		},
	},
	VariantInfoCard: {
		label: "Info cards",
		zero:  func() Section { return &InfoCard{Base: newBase(VariantInfoCard)} },
		defaults: func() Section {
			return &InfoCard{
				Base:   newBase(VariantInfoCard),
				Title:  "Good to know",
				Cards:  []Card{{Title: "Info", Description: "Add a short description.", MediaType: MediaImage}},
				Layout: "horizontal",
			}
		},
	},
	VariantMediaStoryCards: {
		label: "Media stories",
		zero:  func() Section { return &MediaStoryCards{Base: newBase(VariantMediaStoryCards)} },
		defaults: func() Section {
			return &MediaStoryCards{Base: newBase(VariantMediaStoryCards), Title: "Stories", Cards: []Card{}}
		},
	},
	VariantMiniCardGrid: {
		label: "Mini cards",
		zero:  func() Section { return &MiniCardGrid{Base: newBase(VariantMiniCardGrid)} },
		defaults: func() Section {
			return &MiniCardGrid{Base: newBase(VariantMiniCardGrid), Title: "Highlights", Cards: []Card{}, Columns: 4}
		},
	},
	VariantMediaPlaceholder: {
		label: "Media placeholder",
		zero:  func() Section { return &MediaPlaceholder{Base: newBase(VariantMediaPlaceholder)} },
		defaults: func() Section {
			return &MediaPlaceholder{
				Base:        newBase(VariantMediaPlaceholder),
				Title:       "Media",
				Description: "Select media to replace this placeholder.",
				Cards:       []Card{{Title: "Placeholder", MediaType: MediaImage}},
			}
		},
	},
	VariantContactForm: {
		label: "Contact form",
		zero:  func() Section { return &ContactForm{Base: newBase(VariantContactForm)} },
		defaults: func() Section {
			return &ContactForm{
				Base:  newBase(VariantContactForm),
				Title: "Contact us",
				Fields: []FormField{
					{Name: "name", Label: "Name", Kind: "text", Placeholder: "Your name", Required: true},
					{Name: "email", Label: "Email", Kind: "email", Placeholder: "you@example.com", Required: true},
					{Name: "message", Label: "Message", Kind: "textarea", Placeholder: "How can we help?", Required: true},
				},
				SubmitText:     "Send message",
				SuccessMessage: "Thanks! We will get back to you soon.",
			}
		},
	},
	VariantHeader: {
		label: "Header",
		zero:  func() Section { return &Header{Base: newBase(VariantHeader)} },
		defaults: func() Section {
			return &Header{
				Base:     newBase(VariantHeader),
				SiteName: "My Site",
				Links:    []NavLink{{Label: "Home", URL: "/"}},
				Sticky:   true,
			}
		},
	},
	VariantFooter: {
		label: "Footer",
		zero:  func() Section { return &Footer{Base: newBase(VariantFooter)} },
		defaults: func() Section {
			return &Footer{Base: newBase(VariantFooter), Text: "All rights reserved.", Links: []NavLink{}, Social: []SocialLink{}}
		},
	},
	VariantTestimonials: {
		label: "Testimonials",
		zero:  func() Section { return &Testimonials{Base: newBase(VariantTestimonials)} },
		defaults: func() Section {
			return &Testimonials{
				Base:  newBase(VariantTestimonials),
				Title: "What people say",
				Items: []Testimonial{{Quote: "Simply the best.", Author: "Happy customer"}},
			}
		},
	},
	VariantPricing: {
		label: "Pricing",
		zero:  func() Section { return &Pricing{Base: newBase(VariantPricing)} },
		defaults: func() Section {
			return &Pricing{
				Base:  newBase(VariantPricing),
				Title: "Pricing",
				Plans: []PricingPlan{
					{Name: "Basic", Price: "$0", Period: "month", Features: []string{"1 page"}, ButtonText: "Start"},
					{Name: "Pro", Price: "$19", Period: "month", Features: []string{"Unlimited pages", "Custom domain"}, ButtonText: "Upgrade", Highlighted: true},
				},
			}
		},
	},
	VariantFAQ: {
		label: "FAQ",
		zero:  func() Section { return &FAQ{Base: newBase(VariantFAQ)} },
		defaults: func() Section {
			return &FAQ{
				Base:  newBase(VariantFAQ),
				Title: "Frequently asked questions",
				Items: []FAQItem{{Question: "How does it work?", Answer: "Add blocks, edit them, save."}},
			}
		},
	},
	VariantCallToAction: {
		label: "Call to action",
		zero:  func() Section { return &CallToAction{Base: newBase(VariantCallToAction)} },
		defaults: func() Section {
			return &CallToAction{
				Base:        newBase(VariantCallToAction),
				Title:       "Ready to start?",
				Description: "Join today and build your page in minutes.",
				Button:      Button{Text: "Sign up", URL: "#", Style: "primary"},
			}
		},
	},
	VariantProfile: {
		label: "Profile",
		zero:  func() Section { return &Profile{Base: newBase(VariantProfile)} },
		defaults: func() Section {
			return &Profile{Base: newBase(VariantProfile), Name: "Your name", Headline: "What you do", Links: []SocialLink{}}
		},
	},
	VariantSplitMedia: {
		label: "Split media",
		zero:  func() Section { return &SplitMedia{Base: newBase(VariantSplitMedia)} },
		defaults: func() Section {
			return &SplitMedia{
				Base:          newBase(VariantSplitMedia),
				Title:         "Tell your story",
				Content:       "Pair a message with a picture.",
				MediaPosition: "left",
			}
		},
	},
	VariantStats: {
		label: "Stats",
		zero:  func() Section { return &Stats{Base: newBase(VariantStats)} },
		defaults: func() Section {
			return &Stats{
				Base: newBase(VariantStats),
				Items: []Stat{
					{Label: "Customers", Value: "100", Suffix: "+"},
					{Label: "Uptime", Value: "99.9", Suffix: "%"},
				},
				Columns: 2,
			}
		},
	},
	VariantTeam: {
		label: "Team",
		zero:  func() Section { return &Team{Base: newBase(VariantTeam)} },
		defaults: func() Section {
			return &Team{Base: newBase(VariantTeam), Title: "Meet the team", Members: []TeamMember{}}
		},
	},
	VariantEmbed: {
		label: "Embed",
		zero:  func() Section { return &Embed{Base: newBase(VariantEmbed)} },
		defaults: func() Section {
			return &Embed{Base: newBase(VariantEmbed), AspectRatio: "16:9"}
		},
	},
	VariantSpacer: {
		label: "Spacer",
		zero:  func() Section { return &Spacer{Base: newBase(VariantSpacer)} },
		defaults: func() Section {
			return &Spacer{Base: newBase(VariantSpacer), Height: 48}
		},
	},
}

// Defaults returns a fresh section of variant v populated with its documented
// defaults. The id is left empty. ok is false for unknown tags.
func Defaults(v Variant) (s Section, ok bool) {
	entry, ok := table[v]
	if !ok {
		return nil, false
	}
	return entry.defaults(), true
}

// Catalog describes one variant for pickers and API consumers.
type Catalog struct {
	Variant  Variant `json:"type"`
	Label    string  `json:"label"`
	Defaults Section `json:"defaults"`
}

// Describe lists every variant with its label and defaults in canonical order.
func Describe() []Catalog {
	out := make([]Catalog, 0, len(canonicalOrder))
	for _, v := range canonicalOrder {
		entry := table[v]
		defaults := entry.defaults()
		defaults.normalize()
		out = append(out, Catalog{Variant: v, Label: entry.label, Defaults: defaults})
	}
	return out
}
