package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgCyan)
)

func (a *App) success(format string, args ...any) {
	successColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) failure(err error) {
	msg := err.Error()
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		msg = apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		msg = "server unavailable"
	}
	errorColor.Fprintf(a.out, "Error: %s\n", msg)
}

func (a *App) printFiles(files []client.File) {
	if len(files) == 0 {
		dimColor.Fprintln(a.out, "(empty)")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tPUBLIC\tNAME")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Type, yesNo(f.IsPublic), f.Name)
	}
	tw.Flush()
}

func (a *App) printFile(f *client.File) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%s\n", f.ID)
	fmt.Fprintf(tw, "name\t%s\n", f.Name)
	fmt.Fprintf(tw, "type\t%s\n", f.Type)
	fmt.Fprintf(tw, "public\t%s\n", yesNo(f.IsPublic))
	fmt.Fprintf(tw, "parent\t%s\n", f.ParentID)
	fmt.Fprintf(tw, "owner\t%s\n", f.UserID)
	tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
