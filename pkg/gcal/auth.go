package gcal

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// ErrNoToken means publish has not been authorized yet.
var ErrNoToken = errors.New("gcal: no token, run `weekplan publish --login` first")

var scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// Config reads the OAuth client from a Google credentials.json file.
func Config(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to read client secret file %s: %w", credentials, err)
	}
	cfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to parse client secret file: %w", err)
	}
	return cfg, nil
}

// Client returns an authorized client that refreshes its token as needed.
func Client(ctx context.Context, cfg *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := readToken(tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, &savingSource{
		src:  cfg.TokenSource(ctx, tok),
		last: tok,
		path: tokenPath,
	}), nil
}

// Login runs the copy-paste authorization flow: the user opens the printed
// URL, approves access and pastes back the code.
func Login(ctx context.Context, cfg *oauth2.Config, tokenPath string, in io.Reader, out io.Writer) error {
	url := cfg.AuthCodeURL("weekplan", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	_, _ = fmt.Fprintf(out, "Open this URL, approve access, then paste the code:\n%s\n> ", url)

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("gcal: no authorization code")
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("gcal: unable to retrieve token: %w", err)
	}
	return writeToken(tokenPath, tok)
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("gcal: failed to decode token from %s: %w", path, err)
	}
	return tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("gcal: unable to save token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// savingSource persists refreshed tokens so the next run starts from them.
type savingSource struct {
	src  oauth2.TokenSource
	last *oauth2.Token
	path string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		if err := writeToken(s.path, tok); err != nil {
			fmt.Fprintf(os.Stderr, "gcal: %v\n", err)
		}
		s.last = tok
	}
	return tok, nil
}
