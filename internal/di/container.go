package di

import (
	"context"
	"fmt"
	"time"

	"github.com/vividus-framework/vividus-sub002/internal/adapter/filter"
	"github.com/vividus-framework/vividus-sub002/internal/adapter/search"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/input"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/application/service"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/browser/playwright"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/browser/rod"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/browser/selenium"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/browser/static"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/logger"
	"github.com/vividus-framework/vividus-sub002/internal/usecase/check"
	searchuc "github.com/vividus-framework/vividus-sub002/internal/usecase/search"
)

const (
	DriverRod        = "rod"
	DriverSelenium   = "selenium"
	DriverPlaywright = "playwright"
	DriverStatic     = "static"
)

type Container struct {
	Browser output.BrowserPort
	Logger  output.LoggerPort
	Engine  *Engine
	Checker input.SuiteChecker
}

type Config struct {
	Driver          string
	BrowserHeadless bool
	BrowserTimeout  time.Duration
	SeleniumURL     string
	// RodControlURL attaches the rod driver to a running browser.
	RodControlURL string

	ElementWaitTimeout time.Duration
	ElementWaitPolling time.Duration
	LinkCaseSensitive  bool

	LogLevel string
	LogFile  string
}

func DefaultConfig() Config {
	return Config{
		Driver:             DriverRod,
		BrowserHeadless:    true,
		BrowserTimeout:     30 * time.Second,
		ElementWaitPolling: search.DefaultFinderConfig().PollingInterval,
		LinkCaseSensitive:  true,
	}
}

// Engine is the browser-independent part of the wiring.
type Engine struct {
	Types      *service.LocatorTypeRegistry
	Strategies *service.StrategyRegistryImpl
	Parser     *service.LocatorParser
	Finder     *search.Finder
	Locator    *searchuc.UseCase
}

func NewEngine(cfg Config, log output.LoggerPort) (*Engine, error) {
	types, err := service.NewDefaultLocatorTypeRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build locator types: %w", err)
	}

	finder := search.NewFinder(search.FinderConfig{
		WaitTimeout:     cfg.ElementWaitTimeout,
		PollingInterval: cfg.ElementWaitPolling,
	}, log)
	parser := service.NewLocatorParser(types)
	strategies := service.NewStrategyRegistry()
	locator := searchuc.New(strategies, finder, log)

	link := filter.LinkConfig{CaseSensitive: cfg.LinkCaseSensitive}
	registerSearchStrategies(strategies, locator, parser, finder, link, log)
	registerFilterStrategies(strategies, link)

	if err := strategies.Verify(types); err != nil {
		return nil, err
	}

	return &Engine{
		Types:      types,
		Strategies: strategies,
		Parser:     parser,
		Finder:     finder,
		Locator:    locator,
	}, nil
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	engine, err := NewEngine(cfg, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	browser, err := newBrowser(ctx, cfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	log.Debug("Container ready", "driver", cfg.Driver)

	return &Container{
		Browser: browser,
		Logger:  log,
		Engine:  engine,
		Checker: check.New(browser, engine.Parser, engine.Locator, log.WithField("component", "check")),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newBrowser(ctx context.Context, cfg Config) (output.BrowserPort, error) {
	switch cfg.Driver {
	case DriverRod, "":
		rodCfg := rod.DefaultConfig()
		rodCfg.Headless = cfg.BrowserHeadless
		rodCfg.Timeout = cfg.BrowserTimeout
		rodCfg.ControlURL = cfg.RodControlURL
		return rod.NewBrowserAdapter(ctx, rodCfg)
	case DriverSelenium:
		seleniumCfg := selenium.DefaultConfig()
		seleniumCfg.Headless = cfg.BrowserHeadless
		if cfg.SeleniumURL != "" {
			seleniumCfg.RemoteURL = cfg.SeleniumURL
		}
		return selenium.NewBrowserAdapter(seleniumCfg)
	case DriverPlaywright:
		pwCfg := playwright.DefaultConfig()
		pwCfg.Headless = cfg.BrowserHeadless
		pwCfg.Timeout = cfg.BrowserTimeout
		return playwright.NewBrowserAdapter(pwCfg)
	case DriverStatic:
		return static.NewBrowserAdapter(nil), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

func registerSearchStrategies(
	registry *service.StrategyRegistryImpl,
	resolver search.LocatorResolver,
	parser input.LocatorParser,
	finder output.ElementFinder,
	link filter.LinkConfig,
	log output.LoggerPort,
) {
	registry.RegisterSearch(entity.LinkText, search.NewLinkTextSearch(finder, log))
	registry.RegisterSearch(entity.LinkURL, search.NewLinkURLSearch(finder, link))
	registry.RegisterSearch(entity.CaseSensitiveText, search.NewCaseSensitiveTextSearch(finder))
	registry.RegisterSearch(entity.CaseInsensitiveText, search.NewCaseInsensitiveTextSearch(finder, log))
	registry.RegisterSearch(entity.ButtonName, search.NewButtonNameSearch(finder, log))
	registry.RegisterSearch(entity.FieldName, search.NewFieldNameSearch(finder, log))
	registry.RegisterSearch(entity.CheckboxName, search.NewCheckboxNameSearch(finder, log))
	registry.RegisterSearch(entity.ElementName, search.NewElementNameSearch(finder, log))
	registry.RegisterSearch(entity.Relative, search.NewRelativeSearch(resolver, parser, finder, log))
}

func registerFilterStrategies(registry *service.StrategyRegistryImpl, link filter.LinkConfig) {
	registry.RegisterFilter(entity.State, filter.NewStateFilter())
	registry.RegisterFilter(entity.TextPart, filter.NewTextPartFilter())
	registry.RegisterFilter(entity.CaseSensitiveText, filter.NewCaseSensitiveTextFilter())
	registry.RegisterFilter(entity.CaseInsensitiveText, filter.NewCaseInsensitiveTextFilter())
	registry.RegisterFilter(entity.Tooltip, filter.NewTooltipFilter())
	registry.RegisterFilter(entity.ClassAttributePart, filter.NewClassAttributePartFilter())
	registry.RegisterFilter(entity.RelativeToParentWidth, filter.NewRelativeToParentWidthFilter())
	registry.RegisterFilter(entity.ValidationIconSource, filter.NewValidationIconSourceFilter())
	registry.RegisterFilter(entity.LinkURL, filter.NewLinkURLFilter(link))
	registry.RegisterFilter(entity.LinkURLPart, filter.NewLinkURLPartFilter(link))
	registry.RegisterFilter(entity.ImageSrcPart, filter.NewImageSrcPartFilter())
	registry.RegisterFilter(entity.Placeholder, filter.NewPlaceholderFilter())
	registry.RegisterFilter(entity.FieldText, filter.NewFieldTextFilter())
	registry.RegisterFilter(entity.FieldTextPart, filter.NewFieldTextPartFilter())
	registry.RegisterFilter(entity.DropDownText, filter.NewDropDownTextFilter())
	registry.RegisterFilter(entity.DropDownState, filter.NewDropDownStateFilter())
}
