package hook

import (
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
)

var scaffold = lo.Must(template.New("hook").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
}).Parse(constant.HookTemplate))

// Author is the current user name, or Anonymous.
func Author() string {
	if usr, err := user.Current(); err == nil && usr.Username != "" {
		return usr.Username
	}
	return "Anonymous"
}

// New writes a hook script skeleton into the hooks directory and returns its path.
func New(name, author string) (string, error) {
	target := filepath.Join(where.Hooks(), util.SanitizeFilename(name)+".lua")

	f, err := filesystem.API().Create(target)
	if err != nil {
		return "", err
	}
	defer util.Ignore(f.Close)

	err = scaffold.Execute(f, struct {
		Name   string
		Author string
	}{Name: name, Author: author})
	if err != nil {
		return "", err
	}
	return target, nil
}
