package main_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	authPostgres "github.com/lawateaditya/Stock-Management/internal/auth/postgres"
	"github.com/lawateaditya/Stock-Management/internal/catalog"
	catalogPostgres "github.com/lawateaditya/Stock-Management/internal/catalog/postgres"
	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
	ledgerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/ledger"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
	"github.com/lawateaditya/Stock-Management/internal/core/events"
	"github.com/lawateaditya/Stock-Management/internal/identityprovider"
	"github.com/lawateaditya/Stock-Management/internal/ledger"
	ledgerPostgres "github.com/lawateaditya/Stock-Management/internal/ledger/postgres"
	"github.com/lawateaditya/Stock-Management/internal/stock"
	"github.com/lawateaditya/Stock-Management/internal/transport/rest"
	"github.com/lawateaditya/Stock-Management/internal/user"
	userPostgres "github.com/lawateaditya/Stock-Management/internal/user/postgres"
)

const (
	verifiedOAuthSession = "oauth-session-42"
	staffPassword        = "Warehouse#1"
)

// doJSON sends one API request. Token and cookie are independent so a
// single request can present both credentials at once; callers own the
// returned body.
func doJSON(method, url, token string, cookie *http.Cookie, payload any) *http.Response {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		Expect(err).ToNot(HaveOccurred())
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	Expect(err).ToNot(HaveOccurred())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).ToNot(HaveOccurred())
	return resp
}

func decodeInto(resp *http.Response, target any) {
	defer resp.Body.Close()
	Expect(json.NewDecoder(resp.Body).Decode(target)).To(Succeed())
}

func decodeAPIError(resp *http.Response) *internal.AppError {
	var envelope internal.Response
	decodeInto(resp, &envelope)
	Expect(envelope.Error).ToNot(BeNil())
	return envelope.Error
}

func loginAs(base, email, password string) auth.TokenResponse {
	resp := doJSON(http.MethodPost, base+"/api/v1/auth/login", "", nil, auth.LoginDTO{
		Email:    email,
		Password: password,
	})
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	var tokens auth.TokenResponse
	decodeInto(resp, &tokens)
	Expect(tokens.AccessToken).ToNot(BeEmpty())
	return tokens
}

func provisionAccount(base, adminToken, email, name, role string) *auth.User {
	resp := doJSON(http.MethodPost, base+"/api/v1/users", adminToken, nil, user.CreateUserDTO{
		Email:    email,
		Password: staffPassword,
		Name:     name,
		Role:     role,
	})
	Expect(resp.StatusCode).To(Equal(http.StatusCreated))

	var created auth.User
	decodeInto(resp, &created)
	return &created
}

func seedItem(base, adminToken, code, name string, rate float64) {
	resp := doJSON(http.MethodPost, base+"/api/v1/items", adminToken, nil, catalog.CreateItemDTO{
		ItemCode: code,
		ItemName: name,
		Category: "Raw Material",
		UOM:      "Nos",
		ItemRate: rate,
	})
	Expect(resp.StatusCode).To(Equal(http.StatusCreated))
	resp.Body.Close()
}

func recordInwardEntry(base, token, itemCode string, qty, rate float64) *ledger.InwardEntry {
	resp := doJSON(http.MethodPost, base+"/api/v1/inward", token, nil, ledger.CreateInwardDTO{
		Date:       "2026-08-10",
		ItemCode:   itemCode,
		InwardQty:  qty,
		InwardRate: rate,
		Supplier:   "SUP-001",
		RefNo:      "GRN-881",
	})
	Expect(resp.StatusCode).To(Equal(http.StatusCreated))

	var entry ledger.InwardEntry
	decodeInto(resp, &entry)
	return &entry
}

func recordIssueEntry(base, token, itemCode string, qty float64) *ledger.IssueEntry {
	resp := doJSON(http.MethodPost, base+"/api/v1/issue", token, nil, ledger.CreateIssueDTO{
		Date:      "2026-08-11",
		ItemCode:  itemCode,
		IssuedQty: qty,
	})
	Expect(resp.StatusCode).To(Equal(http.StatusCreated))

	var entry ledger.IssueEntry
	decodeInto(resp, &entry)
	return &entry
}

func fetchStatement(base, token string) []*stock.Statement {
	resp := doJSON(http.MethodGet, base+"/api/v1/stock", token, nil, nil)
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	var statements stock.StatementsResponse
	decodeInto(resp, &statements)
	return statements.Stock
}

// completeFederatedLogin drives the OAuth callback endpoint and picks
// the session cookie out of the response. The cookie is replayed by hand
// because its Secure flag keeps a cookie jar from sending it back to the
// plain-HTTP test server.
func completeFederatedLogin(base, sessionID string) (*http.Response, *http.Cookie) {
	req, err := http.NewRequest(http.MethodGet, base+"/api/v1/auth/session-data", nil)
	Expect(err).ToNot(HaveOccurred())
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := http.DefaultClient.Do(req)
	Expect(err).ToNot(HaveOccurred())

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	return resp, sessionCookie
}

var _ = Describe("Inventory API", func() {
	var (
		db       *gorm.DB
		server   *httptest.Server
		provider *httptest.Server
		base     string
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).ToNot(HaveOccurred())

		// in-memory sqlite: a second pooled connection would see an empty database
		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(
			&userDatamodel.User{},
			&userDatamodel.Session{},
			&catalogDatamodel.Item{},
			&catalogDatamodel.Supplier{},
			&ledgerDatamodel.InwardEntry{},
			&ledgerDatamodel.IssueEntry{},
		)).To(Succeed())

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Session-ID") != verifiedOAuthSession {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"id":            "provider-user-1",
				"email":         "oauth.user@example.com",
				"name":          "OAuth User",
				"picture":       "https://accounts.example.com/avatar.png",
				"session_token": "federated-session-token-1",
			})
		}))

		tokenGen := auth.NewJWTTokenGenerator("workflow-suite-secret-0123456789abcdef", 15*time.Minute)
		providerClient := identityprovider.NewClient(identityprovider.Config{
			BaseURL: provider.URL,
			Timeout: 2 * time.Second,
		}, testLogger)

		authService := auth.NewService(authPostgres.NewRepository(db), providerClient, tokenGen, testLogger, bcrypt.MinCost, 24*time.Hour)
		Expect(authService.EnsureSuperAdmin()).To(Succeed())

		userService := user.NewService(userPostgres.NewUserRepository(db), testLogger, bcrypt.MinCost)
		catalogService := catalog.NewService(catalogPostgres.NewCatalogRepository(db), testLogger)

		bus := events.NewEventBus(testLogger)
		ledger.NewEventHandler(testLogger).RegisterEventHandlers(bus)
		ledgerService := ledger.NewService(ledgerPostgres.NewLedgerRepository(db), bus, testLogger)

		stockService := stock.NewService(catalogService, ledgerService, testLogger)

		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, &internal.Config{},
			auth.NewHandler(authService), auth.NewPolicy(),
			user.NewHandler(userService), catalog.NewHandler(catalogService),
			ledger.NewHandler(ledgerService), stock.NewHandler(stockService),
			testLogger)

		server = httptest.NewServer(router)
		base = server.URL
	})

	AfterEach(func() {
		server.Close()
		provider.Close()
	})

	Context("health endpoints", func() {
		It("answers the liveness probe", func() {
			resp := doJSON(http.MethodGet, base+"/api/v1/ping", "", nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			decodeInto(resp, &body)
			Expect(body).To(HaveKeyWithValue("message", "pong"))
		})

		It("reports the database as reachable", func() {
			resp := doJSON(http.MethodGet, base+"/api/v1/health", "", nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var health rest.HealthResponse
			decodeInto(resp, &health)
			Expect(health.Status).To(Equal("healthy"))
			Expect(health.Database).To(Equal("up"))
		})
	})

	Context("password login", func() {
		It("issues a bearer token for the seeded super admin", func() {
			tokens := loginAs(base, auth.SuperAdminEmail, auth.SuperAdminPassword)
			Expect(tokens.TokenType).To(Equal("bearer"))
			Expect(tokens.User.Email).To(Equal(auth.SuperAdminEmail))
			Expect(tokens.User.Role).To(Equal(auth.RoleSuperAdmin))
		})

		It("rejects a wrong password without hinting at the cause", func() {
			resp := doJSON(http.MethodPost, base+"/api/v1/auth/login", "", nil, auth.LoginDTO{
				Email:    auth.SuperAdminEmail,
				Password: "not-the-password",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeInvalidCredentials))
		})

		It("locks the API down for anonymous callers", func() {
			resp := doJSON(http.MethodGet, base+"/api/v1/items", "", nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeMissingCredentials))
		})
	})

	Context("self registration", func() {
		It("registers a storekeeper with the default role", func() {
			resp := doJSON(http.MethodPost, base+"/api/v1/auth/register", "", nil, auth.RegisterDTO{
				Email:    "newkeeper@warehouse.test",
				Password: staffPassword,
				Name:     "New Keeper",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var tokens auth.TokenResponse
			decodeInto(resp, &tokens)
			Expect(tokens.User.Role).To(Equal(auth.RoleInwardUser))

			me := doJSON(http.MethodGet, base+"/api/v1/auth/me", tokens.AccessToken, nil, nil)
			Expect(me.StatusCode).To(Equal(http.StatusOK))

			var identity auth.User
			decodeInto(me, &identity)
			Expect(identity.Email).To(Equal("newkeeper@warehouse.test"))
		})

		It("rejects a duplicate email", func() {
			dto := auth.RegisterDTO{
				Email:    "taken@warehouse.test",
				Password: staffPassword,
				Name:     "First Registrant",
			}

			first := doJSON(http.MethodPost, base+"/api/v1/auth/register", "", nil, dto)
			Expect(first.StatusCode).To(Equal(http.StatusCreated))
			first.Body.Close()

			second := doJSON(http.MethodPost, base+"/api/v1/auth/register", "", nil, dto)
			Expect(second.StatusCode).To(Equal(http.StatusConflict))
			Expect(decodeAPIError(second).Code).To(Equal(internal.ErrCodeDuplicateEmail))
		})
	})

	Context("account administration", func() {
		var adminToken string

		BeforeEach(func() {
			adminToken = loginAs(base, auth.SuperAdminEmail, auth.SuperAdminPassword).AccessToken
		})

		It("staffs the warehouse", func() {
			keeper := provisionAccount(base, adminToken, "keeper@warehouse.test", "Store Keeper", "inward_user")
			Expect(keeper.Role).To(Equal(auth.RoleInwardUser))
			Expect(keeper.IsActive).To(BeTrue())

			provisionAccount(base, adminToken, "clerk@warehouse.test", "Issue Clerk", "issuer_user")

			resp := doJSON(http.MethodGet, base+"/api/v1/users", adminToken, nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var accounts user.UsersResponse
			decodeInto(resp, &accounts)
			Expect(accounts.Users).To(HaveLen(3))

			// a fresh hire can sign in straight away
			loginAs(base, "keeper@warehouse.test", staffPassword)
		})

		It("keeps user management away from warehouse staff", func() {
			provisionAccount(base, adminToken, "keeper@warehouse.test", "Store Keeper", "inward_user")
			keeperToken := loginAs(base, "keeper@warehouse.test", staffPassword).AccessToken

			resp := doJSON(http.MethodGet, base+"/api/v1/users", keeperToken, nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeRoleDenied))
		})
	})

	Context("catalog management", func() {
		var adminToken string

		BeforeEach(func() {
			adminToken = loginAs(base, auth.SuperAdminEmail, auth.SuperAdminPassword).AccessToken
		})

		It("creates, amends and lists items", func() {
			seedItem(base, adminToken, "ITM-001", "Steel Rod 12mm", 52.5)

			newRate := 55.0
			resp := doJSON(http.MethodPatch, base+"/api/v1/items/ITM-001", adminToken, nil, catalog.UpdateItemDTO{
				ItemRate: &newRate,
			})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var amended catalog.Item
			decodeInto(resp, &amended)
			Expect(amended.ItemRate).To(Equal(55.0))
			Expect(amended.ItemName).To(Equal("Steel Rod 12mm"))

			list := doJSON(http.MethodGet, base+"/api/v1/items", adminToken, nil, nil)
			Expect(list.StatusCode).To(Equal(http.StatusOK))

			var items catalog.ItemsResponse
			decodeInto(list, &items)
			Expect(items.Items).To(HaveLen(1))
		})

		It("restricts catalog writes to administrators", func() {
			provisionAccount(base, adminToken, "keeper@warehouse.test", "Store Keeper", "inward_user")
			keeperToken := loginAs(base, "keeper@warehouse.test", staffPassword).AccessToken

			resp := doJSON(http.MethodPost, base+"/api/v1/items", keeperToken, nil, catalog.CreateItemDTO{
				ItemCode: "ITM-002",
				ItemName: "Hex Bolt M10",
				ItemRate: 3.25,
			})
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeRoleDenied))

			// reads stay open to any signed-in account
			list := doJSON(http.MethodGet, base+"/api/v1/items", keeperToken, nil, nil)
			Expect(list.StatusCode).To(Equal(http.StatusOK))
			list.Body.Close()
		})

		It("manages suppliers", func() {
			dto := catalog.CreateSupplierDTO{
				SupplierID:   "SUP-001",
				SupplierName: "Shakti Steels",
				Email:        "sales@shakti.test",
				City:         "Pune",
			}

			resp := doJSON(http.MethodPost, base+"/api/v1/suppliers", adminToken, nil, dto)
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var created catalog.Supplier
			decodeInto(resp, &created)
			Expect(created.SupplierID).To(Equal("SUP-001"))

			duplicate := doJSON(http.MethodPost, base+"/api/v1/suppliers", adminToken, nil, dto)
			Expect(duplicate.StatusCode).To(Equal(http.StatusConflict))
			Expect(decodeAPIError(duplicate).Code).To(Equal(internal.ErrCodeDuplicateSupplier))
		})
	})

	Context("stock movements", func() {
		var adminToken, keeperToken, clerkToken string

		BeforeEach(func() {
			adminToken = loginAs(base, auth.SuperAdminEmail, auth.SuperAdminPassword).AccessToken
			seedItem(base, adminToken, "ITM-001", "Steel Rod 12mm", 52.5)

			provisionAccount(base, adminToken, "keeper@warehouse.test", "Store Keeper", "inward_user")
			provisionAccount(base, adminToken, "clerk@warehouse.test", "Issue Clerk", "issuer_user")
			keeperToken = loginAs(base, "keeper@warehouse.test", staffPassword).AccessToken
			clerkToken = loginAs(base, "clerk@warehouse.test", staffPassword).AccessToken
		})

		It("tracks stock from receipt through issue to the statement", func() {
			entry := recordInwardEntry(base, keeperToken, "ITM-001", 150, 52.5)
			Expect(entry.EntryID).To(HavePrefix("inward_"))
			Expect(entry.ItemDescription).To(Equal("Steel Rod 12mm"))
			Expect(entry.InwardValue).To(Equal(7875.0))

			issued := recordIssueEntry(base, clerkToken, "ITM-001", 30)
			Expect(issued.EntryID).To(HavePrefix("issue_"))
			Expect(issued.ItemDescription).To(Equal("Steel Rod 12mm"))

			rows := fetchStatement(base, adminToken)
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ItemCode).To(Equal("ITM-001"))
			Expect(rows[0].OpeningStk).To(BeZero())
			Expect(rows[0].InwardQty).To(Equal(150.0))
			Expect(rows[0].IssueQty).To(Equal(30.0))
			Expect(rows[0].ClosingStk).To(Equal(120.0))
		})

		It("rejects an issue that exceeds the available stock", func() {
			recordInwardEntry(base, keeperToken, "ITM-001", 100, 52.5)
			recordIssueEntry(base, clerkToken, "ITM-001", 80)

			rejected := doJSON(http.MethodPost, base+"/api/v1/issue", clerkToken, nil, ledger.CreateIssueDTO{
				Date:      "2026-08-11",
				ItemCode:  "ITM-001",
				IssuedQty: 25,
			})
			Expect(rejected.StatusCode).To(Equal(http.StatusBadRequest))

			apiErr := decodeAPIError(rejected)
			Expect(apiErr.Code).To(Equal(internal.ErrCodeInsufficientStock))
			Expect(apiErr.Message).To(Equal("Insufficient stock. Available: 20"))

			// the rejected attempt must leave no trace in the ledger
			rows := fetchStatement(base, adminToken)
			Expect(rows[0].IssueQty).To(Equal(80.0))
			Expect(rows[0].ClosingStk).To(Equal(20.0))
		})

		It("scopes the movement feeds to the caller's role and entries", func() {
			recordInwardEntry(base, keeperToken, "ITM-001", 50, 52.5)

			provisionAccount(base, adminToken, "keeper2@warehouse.test", "Second Keeper", "inward_user")
			keeper2Token := loginAs(base, "keeper2@warehouse.test", staffPassword).AccessToken
			recordInwardEntry(base, keeper2Token, "ITM-001", 20, 52.5)

			all := doJSON(http.MethodGet, base+"/api/v1/inward", adminToken, nil, nil)
			Expect(all.StatusCode).To(Equal(http.StatusOK))
			var adminFeed ledger.InwardEntriesResponse
			decodeInto(all, &adminFeed)
			Expect(adminFeed.Entries).To(HaveLen(2))

			own := doJSON(http.MethodGet, base+"/api/v1/inward", keeper2Token, nil, nil)
			Expect(own.StatusCode).To(Equal(http.StatusOK))
			var keeperFeed ledger.InwardEntriesResponse
			decodeInto(own, &keeperFeed)
			Expect(keeperFeed.Entries).To(HaveLen(1))
			Expect(keeperFeed.Entries[0].InwardQty).To(Equal(20.0))

			denied := doJSON(http.MethodGet, base+"/api/v1/inward", clerkToken, nil, nil)
			Expect(denied.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(denied).Code).To(Equal(internal.ErrCodeRoleDenied))

			deniedIssue := doJSON(http.MethodGet, base+"/api/v1/issue", keeperToken, nil, nil)
			Expect(deniedIssue.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(deniedIssue).Code).To(Equal(internal.ErrCodeRoleDenied))
		})

		It("hides the statement from single-duty staff", func() {
			keeperView := doJSON(http.MethodGet, base+"/api/v1/stock", keeperToken, nil, nil)
			Expect(keeperView.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(keeperView).Code).To(Equal(internal.ErrCodeRoleDenied))

			clerkView := doJSON(http.MethodGet, base+"/api/v1/stock", clerkToken, nil, nil)
			Expect(clerkView.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(clerkView).Code).To(Equal(internal.ErrCodeRoleDenied))
		})

		It("cascades issue deletions when a receipt is withdrawn", func() {
			entry := recordInwardEntry(base, keeperToken, "ITM-001", 100, 52.5)
			recordIssueEntry(base, clerkToken, "ITM-001", 30)
			recordIssueEntry(base, clerkToken, "ITM-001", 20)

			resp := doJSON(http.MethodDelete, base+"/api/v1/inward/"+entry.EntryID, keeperToken, nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result ledger.DeleteInwardResponse
			decodeInto(resp, &result)
			Expect(result.DeletedIssueEntries).To(Equal(int64(2)))

			rows := fetchStatement(base, adminToken)
			Expect(rows[0].InwardQty).To(BeZero())
			Expect(rows[0].IssueQty).To(BeZero())
			Expect(rows[0].ClosingStk).To(BeZero())
		})

		It("protects receipts from deletion by other storekeepers", func() {
			entry := recordInwardEntry(base, keeperToken, "ITM-001", 40, 52.5)

			provisionAccount(base, adminToken, "keeper2@warehouse.test", "Second Keeper", "inward_user")
			keeper2Token := loginAs(base, "keeper2@warehouse.test", staffPassword).AccessToken

			resp := doJSON(http.MethodDelete, base+"/api/v1/inward/"+entry.EntryID, keeper2Token, nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeNotEntryOwner))

			// administrators may withdraw anyone's receipt
			adminResp := doJSON(http.MethodDelete, base+"/api/v1/inward/"+entry.EntryID, adminToken, nil, nil)
			Expect(adminResp.StatusCode).To(Equal(http.StatusOK))
			adminResp.Body.Close()
		})

		It("exports the statement as a spreadsheet", func() {
			recordInwardEntry(base, keeperToken, "ITM-001", 150, 52.5)
			recordIssueEntry(base, clerkToken, "ITM-001", 30)

			resp := doJSON(http.MethodGet, base+"/api/v1/stock/export", adminToken, nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(resp.Header.Get("Content-Disposition")).To(HavePrefix(`attachment; filename="stock_statement_`))

			book, err := excelize.OpenReader(resp.Body)
			resp.Body.Close()
			Expect(err).ToNot(HaveOccurred())
			defer book.Close()

			Expect(book.GetSheetList()).To(ContainElement("Stock Statement"))

			header, err := book.GetCellValue("Stock Statement", "A1")
			Expect(err).ToNot(HaveOccurred())
			Expect(header).To(Equal("Item Code"))

			closing, err := book.GetCellValue("Stock Statement", "H2")
			Expect(err).ToNot(HaveOccurred())
			Expect(closing).To(Equal("120"))
		})
	})

	Context("federated sessions", func() {
		var adminToken string

		BeforeEach(func() {
			adminToken = loginAs(base, auth.SuperAdminEmail, auth.SuperAdminPassword).AccessToken
		})

		It("verifies the provider session and plants the cookie", func() {
			resp, cookie := completeFederatedLogin(base, verifiedOAuthSession)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var identity auth.User
			decodeInto(resp, &identity)
			Expect(identity.Email).To(Equal("oauth.user@example.com"))
			Expect(identity.Role).To(Equal(auth.RoleInwardUser))
			Expect(identity.Picture).To(Equal("https://accounts.example.com/avatar.png"))

			Expect(cookie).ToNot(BeNil())
			Expect(cookie.Value).To(Equal("federated-session-token-1"))
			Expect(cookie.HttpOnly).To(BeTrue())
			Expect(cookie.Secure).To(BeTrue())
			Expect(cookie.MaxAge).To(BeNumerically(">", 0))
		})

		It("lets the session cookie outrank a bearer token", func() {
			resp, cookie := completeFederatedLogin(base, verifiedOAuthSession)
			resp.Body.Close()
			Expect(cookie).ToNot(BeNil())

			me := doJSON(http.MethodGet, base+"/api/v1/auth/me", adminToken, cookie, nil)
			Expect(me.StatusCode).To(Equal(http.StatusOK))

			var identity auth.User
			decodeInto(me, &identity)
			Expect(identity.Email).To(Equal("oauth.user@example.com"))
		})

		It("falls back to the bearer token once the session expires", func() {
			resp, cookie := completeFederatedLogin(base, verifiedOAuthSession)
			resp.Body.Close()
			Expect(cookie).ToNot(BeNil())

			Expect(db.Exec(
				"UPDATE user_sessions SET expires_at = ? WHERE session_token = ?",
				time.Now().Add(-time.Hour), cookie.Value,
			).Error).ToNot(HaveOccurred())

			me := doJSON(http.MethodGet, base+"/api/v1/auth/me", adminToken, cookie, nil)
			Expect(me.StatusCode).To(Equal(http.StatusOK))

			var identity auth.User
			decodeInto(me, &identity)
			Expect(identity.Email).To(Equal(auth.SuperAdminEmail))

			// with no fallback credential the dead session is a 401
			bare := doJSON(http.MethodGet, base+"/api/v1/auth/me", "", cookie, nil)
			Expect(bare.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(decodeAPIError(bare).Code).To(Equal(internal.ErrCodeMissingCredentials))
		})

		It("reports an unverified provider session as a bad gateway", func() {
			resp, _ := completeFederatedLogin(base, "session-the-provider-rejects")
			Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))

			apiErr := decodeAPIError(resp)
			Expect(apiErr.Code).To(Equal(internal.ErrCodeAuthProviderError))
			// the provider's address must never leak to API clients
			Expect(apiErr.Message).ToNot(ContainSubstring(provider.URL))
		})

		It("requires the session header", func() {
			resp := doJSON(http.MethodGet, base+"/api/v1/auth/session-data", "", nil, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(decodeAPIError(resp).Code).To(Equal(internal.ErrCodeMissingSessionID))
		})

		It("kills the session on logout", func() {
			resp, cookie := completeFederatedLogin(base, verifiedOAuthSession)
			resp.Body.Close()
			Expect(cookie).ToNot(BeNil())

			out := doJSON(http.MethodPost, base+"/api/v1/auth/logout", "", cookie, nil)
			Expect(out.StatusCode).To(Equal(http.StatusOK))
			out.Body.Close()
			for _, dropped := range out.Cookies() {
				if dropped.Name == auth.SessionCookieName {
					Expect(dropped.MaxAge).To(BeNumerically("<", 0))
				}
			}

			// the dropped cookie no longer authenticates
			me := doJSON(http.MethodGet, base+"/api/v1/auth/me", "", cookie, nil)
			Expect(me.StatusCode).To(Equal(http.StatusUnauthorized))
			me.Body.Close()

			// logging out again with the dead cookie still succeeds for a
			// caller holding a bearer token
			again := doJSON(http.MethodPost, base+"/api/v1/auth/logout", adminToken, cookie, nil)
			Expect(again.StatusCode).To(Equal(http.StatusOK))
			again.Body.Close()
		})
	})
})
