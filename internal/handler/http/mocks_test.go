package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, request models.AuthRequest) (models.User, error)
	loginFn        func(ctx context.Context, request models.AuthRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, request models.AuthRequest) (models.User, error) {
	if m.registerUserFn != nil {
		return m.registerUserFn(ctx, request)
	}
	return models.User{ID: 1, Username: request.Username, Roles: []models.Role{models.RoleUser}}, nil
}

func (m *mockAuthService) Login(ctx context.Context, request models.AuthRequest) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, request)
	}
	return models.User{ID: 1, Username: request.Username, Roles: []models.Role{models.RoleUser}}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "stub-token", UserID: user.ID}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{UserID: 1}, nil
}

// ─────────────────────────────────────────────
// Mock UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getUserFn               func(ctx context.Context, id int64) (models.User, error)
	requestAdminRoleFn      func(ctx context.Context, requester models.User) (models.User, error)
	listAdminRoleRequestsFn func(ctx context.Context, requester models.User) ([]models.User, error)
	approveAdminRoleFn      func(ctx context.Context, userID int64, requester models.User) (models.User, error)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return models.User{ID: id, Username: "alice", Roles: []models.Role{models.RoleUser}}, nil
}

func (m *mockUserService) RequestAdminRole(ctx context.Context, requester models.User) (models.User, error) {
	if m.requestAdminRoleFn != nil {
		return m.requestAdminRoleFn(ctx, requester)
	}
	requester.AdminRoleRequested = true
	return requester, nil
}

func (m *mockUserService) ListAdminRoleRequests(ctx context.Context, requester models.User) ([]models.User, error) {
	if m.listAdminRoleRequestsFn != nil {
		return m.listAdminRoleRequestsFn(ctx, requester)
	}
	return nil, nil
}

func (m *mockUserService) ApproveAdminRole(ctx context.Context, userID int64, requester models.User) (models.User, error) {
	if m.approveAdminRoleFn != nil {
		return m.approveAdminRoleFn(ctx, userID, requester)
	}
	return models.User{ID: userID, Roles: []models.Role{models.RoleUser, models.RoleAdmin}}, nil
}

// ─────────────────────────────────────────────
// Mock RouteService
// ─────────────────────────────────────────────

type mockRouteService struct {
	createFn      func(ctx context.Context, input models.RouteInput, requester models.User) (models.Route, error)
	getFn         func(ctx context.Context, id int64) (models.Route, error)
	listFn        func(ctx context.Context) ([]models.Route, error)
	updateFn      func(ctx context.Context, id int64, update models.RouteUpdate, requester models.User) (models.Route, error)
	deleteFn      func(ctx context.Context, id int64, requester models.User) error
	deleteByFn    func(ctx context.Context, rating int64, requester models.User) (int, error)
	searchFn      func(ctx context.Context, substring string) ([]models.Route, error)
	ratingLessFn  func(ctx context.Context, rating int64) ([]models.Route, error)
	findBetweenFn func(ctx context.Context, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error)
	listAuditFn   func(ctx context.Context, routeID int64) ([]models.RouteAudit, error)
}

func (m *mockRouteService) CreateRoute(ctx context.Context, input models.RouteInput, requester models.User) (models.Route, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input, requester)
	}
	return models.Route{ID: 1, Name: input.Name}, nil
}

func (m *mockRouteService) CreateRouteInTx(ctx context.Context, _ store.Querier, input models.RouteInput, requester models.User) (models.Route, error) {
	return m.CreateRoute(ctx, input, requester)
}

func (m *mockRouteService) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Route{ID: id, Name: "Mountain Loop"}, nil
}

func (m *mockRouteService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRouteService) UpdateRoute(ctx context.Context, id int64, update models.RouteUpdate, requester models.User) (models.Route, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update, requester)
	}
	return models.Route{ID: id}, nil
}

func (m *mockRouteService) DeleteRoute(ctx context.Context, id int64, requester models.User) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, requester)
	}
	return nil
}

func (m *mockRouteService) DeleteRoutesByRating(ctx context.Context, rating int64, requester models.User) (int, error) {
	if m.deleteByFn != nil {
		return m.deleteByFn(ctx, rating, requester)
	}
	return 0, nil
}

func (m *mockRouteService) SearchRoutesByName(ctx context.Context, substring string) ([]models.Route, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, substring)
	}
	return nil, nil
}

func (m *mockRouteService) SearchRoutesByRatingLessThan(ctx context.Context, rating int64) ([]models.Route, error) {
	if m.ratingLessFn != nil {
		return m.ratingLessFn(ctx, rating)
	}
	return nil, nil
}

func (m *mockRouteService) FindRoutesBetweenLocations(ctx context.Context, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error) {
	if m.findBetweenFn != nil {
		return m.findBetweenFn(ctx, fromName, toName, sortBy)
	}
	return nil, nil
}

func (m *mockRouteService) ListRouteAudit(ctx context.Context, routeID int64) ([]models.RouteAudit, error) {
	if m.listAuditFn != nil {
		return m.listAuditFn(ctx, routeID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock ImportService
// ─────────────────────────────────────────────

type mockImportService struct {
	importFn      func(ctx context.Context, filename string, file io.Reader, requester models.User) (models.ImportHistory, error)
	listHistoryFn func(ctx context.Context, requester models.User) ([]models.ImportHistory, error)
	fileURLFn     func(ctx context.Context, historyID int64, requester models.User) (string, error)
}

func (m *mockImportService) ImportRoutes(ctx context.Context, filename string, file io.Reader, requester models.User) (models.ImportHistory, error) {
	if m.importFn != nil {
		return m.importFn(ctx, filename, file, requester)
	}
	return models.ImportHistory{ID: 1, Status: models.ImportSuccess}, nil
}

func (m *mockImportService) ListImportHistory(ctx context.Context, requester models.User) ([]models.ImportHistory, error) {
	if m.listHistoryFn != nil {
		return m.listHistoryFn(ctx, requester)
	}
	return nil, nil
}

func (m *mockImportService) GetImportFileURL(ctx context.Context, historyID int64, requester models.User) (string, error) {
	if m.fileURLFn != nil {
		return m.fileURLFn(ctx, historyID, requester)
	}
	return "https://example.com/file", nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services.AuthService == nil {
		services.AuthService = &mockAuthService{}
	}
	if services.UserService == nil {
		services.UserService = &mockUserService{}
	}
	if services.RouteService == nil {
		services.RouteService = &mockRouteService{}
	}
	if services.ImportService == nil {
		services.ImportService = &mockImportService{}
	}
	return &Handler{
		services: services,
		logger:   logger.Nop(),
	}
}

func newTestRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	return newTestHandler(t, services).Init()
}

// injectNopLogger puts a nop logger into the request context for handlers
// called directly, without the router's middleware chain.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

func validAuthHeader() string { return "Bearer stub-token" }

func executeRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
