package editor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	EditQueryParam = "edit"

	routeGroup = "editor"
	routePage  = "page"
	routeParam = "key"
)

var ErrRouteManagerRequired = errors.New("editor: route manager is required")

// NewRouteManager returns a go-urlkit manager with a single "editor" group
// whose "page" route is pageRoute (for example "/pages/:key").
func NewRouteManager(siteURL, pageRoute string) *urlkit.RouteManager {
	if strings.TrimSpace(pageRoute) == "" {
		pageRoute = "/:" + routeParam
	}
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: strings.TrimRight(siteURL, "/"),
				Paths: map[string]string{
					routePage: pageRoute,
				},
			},
		},
	})
}

// URLKitState writes the edit flag into the page URL built by go-urlkit and
// hands the result to Publish (a browser history push, a CLI print).
type URLKitState struct {
	manager *urlkit.RouteManager
	publish func(ctx context.Context, rawURL string) error

	mu      sync.Mutex
	current string
}

func NewURLKitState(manager *urlkit.RouteManager, publish func(ctx context.Context, rawURL string) error) (*URLKitState, error) {
	if manager == nil {
		return nil, ErrRouteManagerRequired
	}
	return &URLKitState{manager: manager, publish: publish}, nil
}

func (s *URLKitState) SetEditMode(ctx context.Context, pageKey string, editing bool) error {
	target, err := s.Build(pageKey, editing)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = target
	s.mu.Unlock()
	if s.publish == nil {
		return nil
	}
	return s.publish(ctx, target)
}

// Build returns the page URL carrying edit=true|false.
func (s *URLKitState) Build(pageKey string, editing bool) (target string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("editor: urlkit route %s.%s unavailable: %v", routeGroup, routePage, rec)
		}
	}()
	builder := s.manager.Group(routeGroup).Builder(routePage)
	builder.WithParam(routeParam, pageKey)
	builder.WithQuery(EditQueryParam, strconv.FormatBool(editing))
	return builder.Build()
}

// Current is the last URL written.
func (s *URLKitState) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// EditFlag reads the edit flag from rawURL. Missing or malformed values
// read as false.
func EditFlag(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	value, err := strconv.ParseBool(parsed.Query().Get(EditQueryParam))
	return err == nil && value
}
