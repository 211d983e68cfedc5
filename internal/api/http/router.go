package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"

	_ "github.com/pathfinder-tours/pathfinder/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	RateLimits httpx.RateLimits

	// StrictGuards turns on the existence check for the user and customer
	// tiers. The admin tier always checks.
	StrictGuards bool
	CookieSecure bool
	Principals   httpx.Principals

	CredentialService *service.CredentialService
	LifecycleService  *service.LifecycleService
	AccountService    *service.AccountService
	CustomerService   *service.CustomerService
	NewsletterService *service.NewsletterService
	ContactService    *service.ContactService
	MFAService        *service.MFAService
	OAuthService      *service.OAuthService // Optional: only when Google sign-in is configured
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		RateLimits:   httpx.DefaultRateLimits(),
		StrictGuards: true,
		Principals:   &service.PrincipalResolver{Store: st},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCredentials()
	r.registerLifecycle()
	r.registerAccounts()
	r.registerCustomers()
	r.registerNewsletter()
	r.registerContact()
	r.registerMFA()
	r.registerGoogle()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pathfinder API
//	@version		0.1.0
//	@description	Backend of the Pathfinder tour platform. Three authentication tiers share one token format:
//	@description	user (platform users, then the admin), admin, and customer.
//	@description
//	@description				Tokens are HS256 JWTs carrying the caller's email. Google sign-in opens a cookie session instead.
//
//	@host						localhost:4000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) guard(tier domain.Tier, recheck bool) httpx.Middleware {
	return httpx.Guard(httpx.GuardConfig{
		Tier:       tier.Name,
		Kinds:      service.KindNames(tier),
		Verifier:   r.verifier,
		Principals: r.Principals,
		Recheck:    recheck,
	})
}

func (r *Router) userGuard() httpx.Middleware     { return r.guard(domain.TierUser, r.StrictGuards) }
func (r *Router) customerGuard() httpx.Middleware { return r.guard(domain.TierCustomer, r.StrictGuards) }
func (r *Router) adminGuard() httpx.Middleware    { return r.guard(domain.TierAdmin, true) }

func (r *Router) registerCredentials() {
	// POST /api/signin - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/signin",
		httpx.Chain(&SigninHandler{Credentials: r.CredentialService},
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)

	// POST /api/login - strict, keyed on IP and the email being tried
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{Credentials: r.CredentialService, Tier: domain.TierUser},
			httpx.RateLimitByIPAndJSONField(r.RateLimits.Strict, "email"),
		),
	)

	r.Mux.Handle("POST /api/logout",
		httpx.Chain(&LogoutHandler{Credentials: r.CredentialService, CookieSecure: r.CookieSecure},
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)

	r.Mux.Handle("GET /api/whoami",
		httpx.Chain(http.HandlerFunc(WhoAmIHandler),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
}

func (r *Router) registerLifecycle() {
	h := &LifecycleHandler{Lifecycle: r.LifecycleService, Accounts: r.AccountService}

	// Token requests send mail, so they share the moderate profile
	r.Mux.Handle("GET /api/accounts/verification",
		httpx.Chain(http.HandlerFunc(h.HandleRequestVerification),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("GET /api/accounts/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleRequestReset),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)

	// Public token redemption - strict rate limit by IP (token guessing)
	r.Mux.Handle("GET /api/accounts/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)
	r.Mux.Handle("POST /api/accounts/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIPAndJSONField(r.RateLimits.Strict, "email"),
		),
	)
	r.Mux.Handle("POST /api/accounts/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)

	r.Mux.Handle("GET /api/admin/users/{id}/verification",
		httpx.Chain(http.HandlerFunc(h.HandleAdminVerification),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("GET /api/admin/users/{id}/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleAdminReset),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{Accounts: r.AccountService}

	r.Mux.Handle("GET /api/account",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("GET /api/account/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("PATCH /api/account",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("DELETE /api/account",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)

	r.Mux.Handle("GET /api/admin/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("DELETE /api/admin/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleAdminDelete),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerCustomers() {
	h := &CustomerHandler{Credentials: r.CredentialService, Customers: r.CustomerService}

	r.Mux.Handle("POST /api/customers/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)
	r.Mux.Handle("POST /api/customers/login",
		httpx.Chain(&LoginHandler{Credentials: r.CredentialService, Tier: domain.TierCustomer},
			httpx.RateLimitByIPAndJSONField(r.RateLimits.Strict, "email"),
		),
	)

	r.Mux.Handle("GET /api/customers",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.customerGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("PATCH /api/customers",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateMe),
			r.customerGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)

	r.Mux.Handle("GET /api/customers/all",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.userGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)

	r.Mux.Handle("GET /api/customers/admin",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("PATCH /api/customers/admin/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleAdminUpdate),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("POST /api/customers",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerNewsletter() {
	h := &NewsletterHandler{Newsletter: r.NewsletterService}

	// POST /api/newsletter - public, moderate by IP
	r.Mux.Handle("POST /api/newsletter",
		httpx.Chain(http.HandlerFunc(h.HandleSubscribe),
			httpx.RateLimitByIP(r.RateLimits.Moderate),
		),
	)

	r.Mux.Handle("GET /api/newsletter",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("DELETE /api/newsletter/{uuid}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("POST /api/newsletter/create",
		httpx.Chain(http.HandlerFunc(h.HandleSend),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerContact() {
	h := &ContactHandler{Contacts: r.ContactService}

	// POST /api/contact - public contact form, moderate by IP
	r.Mux.Handle("POST /api/contact",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.RateLimitByIP(r.RateLimits.Moderate),
		),
	)

	r.Mux.Handle("GET /api/contact",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("PATCH /api/contact/{uuid}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("DELETE /api/contact/{uuid}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /api/admin/mfa/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Moderate),
		),
	)

	// POST /api/admin/mfa/verify - strict rate limit (prevent brute force of TOTP codes)
	r.Mux.Handle("POST /api/admin/mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Strict),
		),
	)
	r.Mux.Handle("DELETE /api/admin/mfa",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			r.adminGuard(),
			httpx.RateLimitByIdentity(r.RateLimits.Strict),
		),
	)
}

func (r *Router) registerGoogle() {
	if r.OAuthService == nil {
		return
	}
	h := &GoogleHandler{OAuth: r.OAuthService, CookieSecure: r.CookieSecure}

	r.Mux.Handle("GET /auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleBegin),
			httpx.RateLimitByIP(r.RateLimits.Moderate),
		),
	)
	r.Mux.Handle("GET /auth/google/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api/ping",
		httpx.Chain(http.HandlerFunc(PingHandler),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
	r.Mux.Handle("GET /api/version",
		httpx.Chain(VersionHandler(r.buildVersion),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)

	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
}
