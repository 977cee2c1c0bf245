package main

import (
	"context"
	"log"

	api "rcc-backend/cmd/api"
	accountsDelivery "rcc-backend/internal/accounts/delivery"
	accountsUsecase "rcc-backend/internal/accounts/usecase"
	authUsecase "rcc-backend/internal/auth/usecase"
	bookingsDelivery "rcc-backend/internal/bookings/delivery"
	bookingsUsecase "rcc-backend/internal/bookings/usecase"
	enquiryDelivery "rcc-backend/internal/enquiry/delivery"
	"rcc-backend/internal/enquiry/domain"
	enquiryUsecase "rcc-backend/internal/enquiry/usecase"
	"rcc-backend/internal/notify"
	"rcc-backend/internal/prefs"
	stocksDelivery "rcc-backend/internal/stocks/delivery"
	stocksUsecase "rcc-backend/internal/stocks/usecase"
	syncDelivery "rcc-backend/internal/syncstore/delivery"
	syncUsecase "rcc-backend/internal/syncstore/usecase"
	weatherDelivery "rcc-backend/internal/weather/delivery"
	weatherUsecase "rcc-backend/internal/weather/usecase"
	"rcc-backend/pkg/config"
	"rcc-backend/pkg/gcal"
	"rcc-backend/pkg/gmail"
	"rcc-backend/pkg/kv"
	"rcc-backend/pkg/localcache"
	"rcc-backend/pkg/starling"
	"rcc-backend/pkg/trading212"
	"rcc-backend/pkg/weather"
	"rcc-backend/pkg/yahoo"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Local device cache (notifier seen-set, local-first preferences)
	cache, err := localcache.Open(cfg.CacheDir)
	if err != nil {
		log.Fatal("Failed to open local cache:", err)
	}
	defer cache.Close()

	// Remote preference store and the local-first layer on top of it
	kvClient := kv.NewClient(cfg.KVRestAPIURL, cfg.KVRestAPIToken)
	syncUsecaseInstance := syncUsecase.NewSyncUsecase(kvClient)
	prefsManager := prefs.NewManager(cache, syncUsecaseInstance)

	// Enquiry pipeline (both mailboxes share one OAuth client)
	var enquiryUsecaseInstance enquiryUsecase.EnquiryUsecase
	if cfg.GmailCredentials != nil {
		gmailService := gmail.NewService(cfg.GmailCredentials.ClientID, cfg.GmailCredentials.ClientSecret)
		ruleset := loadRuleset(cfg.EnquiryRulesFile)
		accounts := []domain.Account{
			{Tag: domain.AccountPersonal, Address: "rstanikk@gmail.com", RefreshToken: cfg.PersonalRefreshToken, UserIndex: 0},
			{Tag: domain.AccountProfessional, Address: "photography@ryanstanikk.co.uk", RefreshToken: cfg.ProfessionalRefreshToken, UserIndex: 4},
		}
		enquiryUsecaseInstance = enquiryUsecase.NewEnquiryUsecase(gmailService, ruleset, accounts)
	} else {
		log.Printf("[WARN] Gmail OAuth not configured, enquiry pipeline disabled")
	}

	// New-enquiry notifier, polling in the background
	if enquiryUsecaseInstance != nil {
		notifier := notify.NewNotifier(cache, notify.LogAlerter{})
		poller := notify.NewPoller(enquiryUsecaseInstance, notifier, cfg.NotifyPollInterval)
		go poller.Start(context.Background())
	}

	// Account balance providers, each optional
	var bank accountsUsecase.BankFetcher
	if cfg.StarlingAccessToken != "" {
		bank = starling.NewClient(cfg.StarlingAccessToken)
	}
	var broker accountsUsecase.BrokerFetcher
	if cfg.Trading212APIKey != "" {
		broker = trading212.NewClient(cfg.Trading212APIKey)
	}
	accountsUsecaseInstance := accountsUsecase.NewAccountsUsecase(bank, broker, prefsManager)

	// Stock quotes
	stocksUsecaseInstance := stocksUsecase.NewStocksUsecase(yahoo.NewClient(), prefsManager)

	// Bookings (service-account Google Calendar)
	var bookingsUsecaseInstance bookingsUsecase.BookingsUsecase
	if cfg.GoogleServiceAccountKey != "" {
		calendarService, err := gcal.NewService(context.Background(), cfg.GoogleServiceAccountKey)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize calendar service: %v", err)
		} else {
			bookingsUsecaseInstance = bookingsUsecase.NewBookingsUsecase(calendarService, bookingsUsecase.DefaultCalendars)
		}
	} else {
		log.Printf("[WARN] GoogleServiceAccountKey not configured, bookings disabled")
	}

	// Weather
	var conditions weatherUsecase.ConditionsFetcher
	if cfg.OpenWeatherAPIKey != "" {
		conditions = weather.NewClient(cfg.OpenWeatherAPIKey)
	}
	weatherUsecaseInstance := weatherUsecase.NewWeatherUsecase(conditions, cfg.WeatherLatitude, cfg.WeatherLongitude)

	// Optional dashboard session
	authUsecaseInstance := authUsecase.NewAuthUsecase(cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		enquiryDelivery.NewEnquiryHandler(enquiryUsecaseInstance),
		syncDelivery.NewSyncHandler(syncUsecaseInstance),
		accountsDelivery.NewAccountsHandler(accountsUsecaseInstance),
		stocksDelivery.NewStocksHandler(stocksUsecaseInstance),
		bookingsDelivery.NewBookingsHandler(bookingsUsecaseInstance),
		weatherDelivery.NewWeatherHandler(weatherUsecaseInstance),
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// loadRuleset prefers the rules file when one is configured and falls
// back to the built-in rules when it is absent or malformed.
func loadRuleset(path string) *enquiryUsecase.Ruleset {
	if path == "" {
		return enquiryUsecase.DefaultRuleset()
	}
	ruleset, err := enquiryUsecase.LoadRuleset(path)
	if err != nil {
		log.Printf("[WARN] Failed to load enquiry rules from %s, using defaults: %v", path, err)
		return enquiryUsecase.DefaultRuleset()
	}
	return ruleset
}
