package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/dmitrijs2005/filekeeper/internal/client/config"
)

// API is the server surface the commands use.
type API interface {
	SetToken(token string)
	Token() string
	Register(ctx context.Context, email, password string) (*client.User, error)
	Connect(ctx context.Context, email, password string) (string, error)
	Disconnect(ctx context.Context) error
	CreateFile(ctx context.Context, in client.NewFile) (*client.File, error)
	GetFile(ctx context.Context, id string) (*client.File, error)
	ListFiles(ctx context.Context, parentID string, page int) ([]client.File, error)
	SetPublish(ctx context.Context, id string, isPublic bool) (*client.File, error)
	Download(ctx context.Context, id string, size int) ([]byte, string, error)
	Status(ctx context.Context) (*client.Status, error)
}

type App struct {
	api     API
	session *session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(client.New(c.ServerURL, c.Timeout), c.SessionFile, os.Stdin, os.Stdout)
}

func newApp(api API, sessionFile string, in io.Reader, out io.Writer) (*App, error) {
	s := &session{path: sessionFile}
	token, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	api.SetToken(token)

	return &App{api: api, session: s, reader: bufio.NewReader(in), out: out}, nil
}

// Run executes args as a single command, or starts the prompt when args is
// empty. It returns the error of a single command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.repl(ctx)
		return nil
	}

	if err := a.execute(ctx, args); err != nil {
		a.failure(err)
		return err
	}
	return nil
}

func (a *App) isConnected() bool {
	return a.api.Token() != ""
}
