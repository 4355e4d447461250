package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/dmitrijs2005/filekeeper/internal/filex"
)

var (
	errUsage        = errors.New("usage")
	errNotConnected = errors.New("not connected, run 'connect' first")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// execute dispatches one command line.
func (a *App) execute(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		a.help()
		return nil
	case "register":
		return a.register(ctx)
	case "connect":
		return a.connect(ctx)
	case "disconnect":
		return a.disconnect(ctx)
	case "ls", "list":
		return a.list(ctx, rest)
	case "mkdir":
		return a.mkdir(ctx, rest)
	case "upload":
		return a.upload(ctx, rest)
	case "info":
		return a.info(ctx, rest)
	case "publish":
		return a.publish(ctx, rest, true)
	case "unpublish":
		return a.publish(ctx, rest, false)
	case "download":
		return a.download(ctx, rest)
	case "status":
		return a.status(ctx)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Available commands: register, connect, disconnect, ls, mkdir, upload, info, publish, unpublish, download, status, exit")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

func (a *App) requireToken() error {
	if !a.isConnected() {
		return errNotConnected
	}
	return nil
}

func (a *App) register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	u, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.success("Registered %s (id %s)", u.Email, u.ID)
	return nil
}

func (a *App) connect(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	token, err := a.api.Connect(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.session.save(token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.success("Connected as %s", email)
	return nil
}

func (a *App) disconnect(ctx context.Context) error {
	if err := a.requireToken(); err != nil {
		return err
	}
	if err := a.api.Disconnect(ctx); err != nil {
		// a revoked or expired token is as good as disconnected
		if !errors.Is(err, client.ErrUnauthorized) {
			return err
		}
		a.api.SetToken("")
	}
	if err := a.session.clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.success("Disconnected")
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := newFlagSet("ls")
	parent := fs.String("parent", "", "parent folder id")
	page := fs.Int("page", 0, "page index")
	if err := fs.Parse(args); err != nil {
		return usage("ls [-parent id] [-page n]")
	}
	if err := a.requireToken(); err != nil {
		return err
	}

	files, err := a.api.ListFiles(ctx, *parent, *page)
	if err != nil {
		return err
	}
	a.printFiles(files)
	return nil
}

func (a *App) mkdir(ctx context.Context, args []string) error {
	fs := newFlagSet("mkdir")
	parent := fs.String("parent", "", "parent folder id")
	public := fs.Bool("public", false, "make the folder public")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usage("mkdir [-parent id] [-public] name")
	}
	if err := a.requireToken(); err != nil {
		return err
	}

	f, err := a.api.CreateFile(ctx, client.NewFile{
		Name:     fs.Arg(0),
		Type:     "folder",
		ParentID: *parent,
		IsPublic: *public,
	})
	if err != nil {
		return err
	}
	a.success("Created folder %s (id %s)", f.Name, f.ID)
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	parent := fs.String("parent", "", "parent folder id")
	public := fs.Bool("public", false, "make the file public")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usage("upload [-parent id] [-public] path")
	}
	if err := a.requireToken(); err != nil {
		return err
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	kind := "file"
	if imageExtensions[strings.ToLower(filepath.Ext(name))] {
		kind = "image"
	}

	f, err := a.api.CreateFile(ctx, client.NewFile{
		Name:     name,
		Type:     kind,
		Data:     data,
		ParentID: *parent,
		IsPublic: *public,
	})
	if err != nil {
		return err
	}
	a.success("Uploaded %s as %s (id %s, %d bytes)", f.Name, f.Type, f.ID, len(data))
	return nil
}

func (a *App) info(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("info id")
	}
	if err := a.requireToken(); err != nil {
		return err
	}

	f, err := a.api.GetFile(ctx, args[0])
	if err != nil {
		return err
	}
	a.printFile(f)
	return nil
}

func (a *App) publish(ctx context.Context, args []string, isPublic bool) error {
	if len(args) != 1 {
		if isPublic {
			return usage("publish id")
		}
		return usage("unpublish id")
	}
	if err := a.requireToken(); err != nil {
		return err
	}

	f, err := a.api.SetPublish(ctx, args[0], isPublic)
	if err != nil {
		return err
	}
	if f.IsPublic {
		a.success("%s is now public", f.Name)
	} else {
		a.success("%s is now private", f.Name)
	}
	return nil
}

// download works without a session for public files.
func (a *App) download(ctx context.Context, args []string) error {
	fs := newFlagSet("download")
	size := fs.Int("size", 0, "thumbnail width (500, 250 or 100)")
	output := fs.String("o", "", "output path")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usage("download [-size w] [-o path] id")
	}
	id := fs.Arg(0)

	data, contentType, err := a.api.Download(ctx, id, *size)
	if err != nil {
		return err
	}

	dest := *output
	if dest == "" {
		dest = id
		if a.isConnected() {
			if f, err := a.api.GetFile(ctx, id); err == nil {
				dest = filepath.Base(f.Name)
			}
		}
	}
	if err := filex.WriteFileAtomic(dest, data, 0o644); err != nil {
		return err
	}
	a.success("Saved %d bytes (%s) to %s", len(data), contentType, dest)
	return nil
}

func (a *App) status(ctx context.Context) error {
	st, err := a.api.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "redis: %s\ndb: %s\n", upDown(st.Redis), upDown(st.DB))
	return nil
}

func upDown(b bool) string {
	if b {
		return successColor.Sprint("up")
	}
	return errorColor.Sprint("down")
}
