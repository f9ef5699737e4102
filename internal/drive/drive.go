// Package drive is the Google Drive boundary: sign-in, listing, search and
// shareable links. When credentials are missing or any call fails, it serves
// a fixed demo dataset of the same shape and reports the problem as an
// advisory error string in Status.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/teachdesk/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultBaseURL = "https://www.googleapis.com/drive/v3/"
	folderMimeType = "application/vnd.google-apps.folder"
	fileFields     = "id,name,mimeType,size,modifiedTime,webViewLink,iconLink,parents"
)

var scopes = []string{
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/drive.file",
}

// ErrNotConfigured is reported when no Drive credentials are configured.
var ErrNotConfigured = errors.New("drive: credentials not configured")

var notConfiguredNotice = ErrNotConfigured.Error() + "; showing demo files"

// File is one Drive entry.
type File struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	ModifiedTime time.Time
	WebViewLink  string
	IconLink     string
	Parents      []string
}

// IsFolder reports whether the entry is a Drive folder.
func (f File) IsFolder() bool {
	return f.MimeType == folderMimeType
}

// Status is the observable state of the client.
type Status struct {
	SignedIn bool
	Loading  bool
	Error    string
	Files    []File
	Demo     bool
}

// AuthorizeFunc shows authURL to the user and returns the authorization code
// they paste back.
type AuthorizeFunc func(ctx context.Context, authURL string) (string, error)

type Option func(*Client)

// WithBaseURL points API calls at another Drive v3 root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") + "/" }
}

// WithHTTPClient sets the transport used for token exchange and API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the OAuth endpoint.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(c *Client) { c.oauth.Endpoint = ep }
}

func WithAuthorizer(fn AuthorizeFunc) Option {
	return func(c *Client) { c.authorize = fn }
}

// WithToken starts the client signed in.
func WithToken(tok *oauth2.Token) Option {
	return func(c *Client) {
		c.token = tok
		c.status.SignedIn = tok != nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client talks to Google Drive on behalf of one signed-in user.
type Client struct {
	cfg        config.DriveConfig
	oauth      *oauth2.Config
	httpClient *http.Client
	baseURL    string
	authorize  AuthorizeFunc
	logger     *zap.Logger

	mu         sync.Mutex
	token      *oauth2.Token
	status     Status
	generation uint64
}

func New(cfg config.DriveConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    defaultBaseURL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("drive")
	return c
}

// Status returns a snapshot of the client state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.status
	st.Files = append([]File(nil), c.status.Files...)
	return st
}

// SignIn runs the OAuth consent flow. Without credentials, or when the flow
// fails, the client enters demo mode instead. Only cancellation of ctx is
// returned as an error.
func (c *Client) SignIn(ctx context.Context) error {
	if !c.cfg.Live() {
		c.enterDemo(notConfiguredNotice)
		return nil
	}
	if c.authorize == nil {
		c.enterDemo("no way to complete Google sign-in in this session; showing demo files")
		return nil
	}

	authURL := c.oauth.AuthCodeURL("teachdesk", oauth2.AccessTypeOffline)
	code, err := c.authorize(ctx, authURL)
	if err == nil {
		var tok *oauth2.Token
		tok, err = c.oauth.Exchange(c.clientContext(ctx), strings.TrimSpace(code))
		if err == nil {
			c.mu.Lock()
			c.token = tok
			c.status = Status{SignedIn: true}
			c.mu.Unlock()
			c.logger.Info("signed in")
			return nil
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.logger.Warn("sign-in failed, using demo data", zap.Error(err))
	c.enterDemo(fmt.Sprintf("Google sign-in failed: %v", err))
	return nil
}

// SignOut forgets the token and clears the file list.
func (c *Client) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	c.generation++
	c.status = Status{}
}

// LoadFiles lists the non-trashed files in folderID ("root" when empty).
func (c *Client) LoadFiles(ctx context.Context, folderID string) ([]File, error) {
	parent := folderID
	if parent == "" {
		parent = "root"
	}
	q := fmt.Sprintf("'%s' in parents and trashed=false", escapeQuery(parent))
	return c.list(ctx, q, func() []File { return demoInFolder(folderID) })
}

// SearchFiles finds non-trashed files whose name contains query.
func (c *Client) SearchFiles(ctx context.Context, query string) ([]File, error) {
	q := fmt.Sprintf("name contains '%s' and trashed=false", escapeQuery(query))
	return c.list(ctx, q, func() []File { return demoMatching(query) })
}

// CreateShareableLink grants anyone-with-the-link read access and returns
// the file's view URL. In demo mode, or on failure, a demo URL is returned.
func (c *Client) CreateShareableLink(ctx context.Context, fileID string) (string, error) {
	tok, live := c.liveToken()
	if !live {
		return demoLink(fileID), nil
	}

	link, err := c.shareFile(ctx, tok, fileID)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("share failed, using demo link", zap.String("file_id", fileID), zap.Error(err))
		c.setError(fmt.Sprintf("could not create a shareable link: %v", err))
		return demoLink(fileID), nil
	}
	return link, nil
}

func (c *Client) list(ctx context.Context, q string, demo func() []File) ([]File, error) {
	gen := c.begin()

	tok, live := c.liveToken()
	if !live {
		files := demo()
		c.finish(gen, files, c.demoReason(), true)
		return files, nil
	}

	files, err := c.fetchFiles(ctx, tok, q)
	if err != nil {
		if ctx.Err() != nil {
			c.finish(gen, nil, "", false)
			return nil, ctx.Err()
		}
		c.logger.Warn("list failed, using demo data",
			zap.String("query", q), zap.Int("status", statusCode(err)), zap.Error(err))
		files = demo()
		c.finish(gen, files, fmt.Sprintf("could not load Drive files: %v", err), true)
		return files, nil
	}
	c.finish(gen, files, "", false)
	return files, nil
}

// begin starts a new request generation. Responses from older generations
// are dropped by finish.
func (c *Client) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.status.Loading = true
	return c.generation
}

func (c *Client) finish(gen uint64, files []File, errMsg string, demo bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("stale response dropped", zap.Uint64("generation", gen))
		return
	}
	c.status.Loading = false
	if files != nil || errMsg != "" {
		c.status.Files = files
	}
	c.status.Error = errMsg
	c.status.Demo = demo
}

func (c *Client) enterDemo(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.status = Status{
		SignedIn: true,
		Error:    reason,
		Files:    demoInFolder(""),
		Demo:     true,
	}
}

func (c *Client) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Error = msg
}

func (c *Client) liveToken() (*oauth2.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.cfg.Live() && c.token != nil
}

func (c *Client) demoReason() string {
	if !c.cfg.Live() {
		return notConfiguredNotice
	}
	return "not signed in to Google Drive; showing demo files"
}

// clientContext makes the oauth2 package use our transport.
func (c *Client) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// service builds a Drive v3 client over the OAuth transport.
func (c *Client) service(ctx context.Context, tok *oauth2.Token) (*drivev3.Service, error) {
	svc, err := drivev3.NewService(ctx,
		option.WithHTTPClient(c.oauth.Client(c.clientContext(ctx), tok)),
		option.WithEndpoint(c.baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return svc, nil
}

func (c *Client) fetchFiles(ctx context.Context, tok *oauth2.Token, q string) ([]File, error) {
	svc, err := c.service(ctx, tok)
	if err != nil {
		return nil, err
	}
	list, err := svc.Files.List().
		Q(q).
		Fields(googleapi.Field("files(" + fileFields + ")")).
		OrderBy("folder,modifiedTime desc").
		PageSize(100).
		Context(ctx).
		Do(c.apiKey())
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, fromAPI(f))
	}
	return files, nil
}

func (c *Client) shareFile(ctx context.Context, tok *oauth2.Token, fileID string) (string, error) {
	svc, err := c.service(ctx, tok)
	if err != nil {
		return "", err
	}
	perm := &drivev3.Permission{Role: "reader", Type: "anyone"}
	if _, err := svc.Permissions.Create(fileID, perm).Context(ctx).Do(c.apiKey()); err != nil {
		return "", fmt.Errorf("grant permission: %w", err)
	}

	f, err := svc.Files.Get(fileID).Fields("webViewLink").Context(ctx).Do(c.apiKey())
	if err != nil {
		return "", fmt.Errorf("fetch link: %w", err)
	}
	if f.WebViewLink == "" {
		return "", errors.New("file has no web link")
	}
	return f.WebViewLink, nil
}

func (c *Client) apiKey() googleapi.CallOption {
	return googleapi.QueryParameter("key", c.cfg.APIKey)
}

func fromAPI(f *drivev3.File) File {
	out := File{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		IconLink:    f.IconLink,
		Parents:     f.Parents,
	}
	if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		out.ModifiedTime = t
	}
	return out
}

// statusCode extracts the HTTP status of a failed API call, or 0.
func statusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
