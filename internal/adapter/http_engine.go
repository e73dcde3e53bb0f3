package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

// slowRequestThreshold is the response time above which an otherwise
// successful request is still logged by the transport hook.
const slowRequestThreshold = 5 * time.Second

// EngineConfig holds the transport settings for the HTTP remote engine.
type EngineConfig struct {
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// CacheDir is where downloaded collections are mirrored on disk.
	CacheDir string
}

type httpRemoteEngine struct {
	client   *resty.Client
	cacheDir string
	log      *logger.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	metadata  models.MetadataBundle
	values    []models.DataValue
	events    map[string][]models.TrackerEvent
	optionalC map[string]json.RawMessage
}

// NewHTTPRemoteEngine constructs the resty-backed [RemoteEngine].
//
// The client is configured with the connect/read/write timeouts from cfg
// (connect bounds dialing, read bounds server think-time before headers,
// write is the overall per-request ceiling covering long transfers) and a
// transport-logging hook that only logs non-2xx responses or requests slower
// than 5s, to avoid log flooding.
func NewHTTPRemoteEngine(cfg EngineConfig, log *logger.Logger) RemoteEngine {
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.WriteTimeout).
		SetTransport(transport)

	cli.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.IsSuccess() && resp.Time() < slowRequestThreshold {
			return nil
		}
		log.Warn().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("remote request degraded")
		return nil
	})

	return &httpRemoteEngine{
		client:   cli,
		cacheDir: cfg.CacheDir,
		log:      log,
		events:   make(map[string][]models.TrackerEvent),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	DisplayName string `json:"displayName"`
}

func (e *httpRemoteEngine) Login(ctx context.Context, username, password, serverURL string) (string, error) {
	if serverURL != "" {
		e.client.SetBaseURL(strings.TrimRight(serverURL, "/"))
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Username: username, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachableHost, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("login parse bearer token: %w", err)
	}
	expiresAt, err := parseExpiryFromJWT(token)
	if err != nil {
		return "", fmt.Errorf("login parse token expiry: %w", err)
	}

	var body loginResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if body.DisplayName == "" {
		body.DisplayName = username
	}

	e.mu.Lock()
	e.token = token
	e.expiresAt = expiresAt
	e.mu.Unlock()

	return body.DisplayName, nil
}

func (e *httpRemoteEngine) Logout(ctx context.Context) error {
	resp, err := e.authedRequest(ctx).Delete("/api/auth/logout")

	// Drop the token regardless of the server's answer so the engine is
	// never stuck authenticated locally while the server already gave up.
	e.mu.Lock()
	e.token = ""
	e.expiresAt = time.Time{}
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachableHost, err)
	}
	if mapped := mapHTTPError(resp); mapped != nil && !errors.Is(mapped, ErrNotAuthenticated) {
		return mapped
	}
	return nil
}

func (e *httpRemoteEngine) IsAuthenticated() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.token != "" && time.Now().Before(e.expiresAt)
}

func (e *httpRemoteEngine) DownloadMetadata(ctx context.Context, onProgress func(percent int)) error {
	report := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}
	report(0)

	var orgUnits []models.OrgUnit
	if err := e.getJSON(ctx, "/api/metadata/organisationUnits", &orgUnits); err != nil {
		return fmt.Errorf("download organisation units: %w", err)
	}
	e.mu.Lock()
	e.metadata.OrgUnits = orgUnits
	e.mu.Unlock()
	report(25)

	var programs []models.Program
	if err := e.getJSON(ctx, "/api/metadata/programs", &programs); err != nil {
		return fmt.Errorf("download programs: %w", err)
	}
	e.mu.Lock()
	e.metadata.Programs = programs
	e.mu.Unlock()
	report(50)

	var dataSets []models.DataSet
	if err := e.getJSON(ctx, "/api/metadata/dataSets", &dataSets); err != nil {
		return fmt.Errorf("download data sets: %w", err)
	}
	e.mu.Lock()
	e.metadata.DataSets = dataSets
	e.mu.Unlock()
	report(75)

	// Optional server configuration; many field deployments never publish
	// it, which the server reports as a 404 with a known signature.
	var appConfig map[string]json.RawMessage
	if err := e.getJSON(ctx, "/api/metadata/appConfig", &appConfig); err != nil {
		if errors.Is(err, ErrOptionalConfigMissing) {
			e.persistCache()
			report(100)
			return ErrOptionalConfigMissing
		}
		return fmt.Errorf("download app config: %w", err)
	}
	e.mu.Lock()
	e.optionalC = appConfig
	e.mu.Unlock()

	e.persistCache()
	report(100)
	return nil
}

func (e *httpRemoteEngine) DownloadAggregateData(ctx context.Context) error {
	var values []models.DataValue
	if err := e.getJSON(ctx, "/api/dataValues", &values); err != nil {
		return fmt.Errorf("download aggregate values: %w", err)
	}

	e.mu.Lock()
	e.values = values
	e.mu.Unlock()

	e.persistCache()
	return nil
}

func (e *httpRemoteEngine) DownloadTrackerData(ctx context.Context, programID string) error {
	var events []models.TrackerEvent
	err := e.getJSONQuery(ctx, "/api/tracker/events", map[string]string{"program": programID}, &events)
	if err != nil {
		return fmt.Errorf("download tracker events for program %s: %w", programID, err)
	}

	e.mu.Lock()
	e.events[programID] = events
	e.mu.Unlock()

	e.persistCache()
	return nil
}

func (e *httpRemoteEngine) Metadata() models.MetadataBundle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metadata
}

func (e *httpRemoteEngine) AggregateValues() []models.DataValue {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.values
}

func (e *httpRemoteEngine) TrackerEvents(programID string) []models.TrackerEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events[programID]
}

func (e *httpRemoteEngine) WipeLocal(_ context.Context) error {
	e.mu.Lock()
	e.metadata = models.MetadataBundle{}
	e.values = nil
	e.events = make(map[string][]models.TrackerEvent)
	e.optionalC = nil
	e.mu.Unlock()

	if e.cacheDir == "" {
		return nil
	}
	if err := os.RemoveAll(e.cacheDir); err != nil {
		return fmt.Errorf("wipe engine cache dir: %w", err)
	}
	return nil
}

func (e *httpRemoteEngine) CacheDir() string {
	return e.cacheDir
}

func (e *httpRemoteEngine) getJSON(ctx context.Context, path string, out any) error {
	return e.getJSONQuery(ctx, path, nil, out)
}

func (e *httpRemoteEngine) getJSONQuery(ctx context.Context, path string, query map[string]string, out any) error {
	req := e.authedRequest(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachableHost, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

func (e *httpRemoteEngine) authedRequest(ctx context.Context) *resty.Request {
	req := e.client.R().SetContext(ctx)

	e.mu.RLock()
	token := e.token
	e.mu.RUnlock()

	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// persistCache mirrors the in-memory collections to the on-disk cache dir.
// Best effort: a failed mirror write is logged, never propagated, because
// the in-memory cache remains authoritative for the current process.
func (e *httpRemoteEngine) persistCache() {
	if e.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(e.cacheDir, 0o755); err != nil {
		e.log.Warn().Err(err).Msg("create engine cache dir")
		return
	}

	e.mu.RLock()
	snapshot := struct {
		Metadata models.MetadataBundle            `json:"metadata"`
		Values   []models.DataValue               `json:"data_values"`
		Events   map[string][]models.TrackerEvent `json:"tracker_events"`
	}{e.metadata, e.values, e.events}
	e.mu.RUnlock()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		e.log.Warn().Err(err).Msg("encode engine cache")
		return
	}
	if err = os.WriteFile(filepath.Join(e.cacheDir, "engine-cache.json"), payload, 0o600); err != nil {
		e.log.Warn().Err(err).Msg("write engine cache")
	}
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseExpiryFromJWT(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiry")
	}
	return exp.Time, nil
}
