package bank

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
)

//go:embed packs/*.yaml
var embeddedPacks embed.FS

// Pack is one category's worth of questions as stored on disk.
type Pack struct {
	Category  string            `yaml:"category"`
	Questions []domain.Question `yaml:"questions"`
}

// PackLoader fetches question packs from a backing source (embedded
// defaults, a pack directory, etc).
type PackLoader interface {
	LoadPack(ctx context.Context, category string) (Pack, error)
	Categories(ctx context.Context) ([]string, error)
}

var defaultPoints = map[domain.Difficulty]int{
	domain.DifficultyEasy:   10,
	domain.DifficultyMedium: 20,
	domain.DifficultyHard:   30,
}

// EmbedLoader serves the built-in packs compiled into the binary.
type EmbedLoader struct {
	fsys fs.FS
}

func NewEmbedLoader() *EmbedLoader {
	sub, err := fs.Sub(embeddedPacks, "packs")
	if err != nil {
		// embed.FS always contains the packs directory at build time.
		panic(err)
	}
	return &EmbedLoader{fsys: sub}
}

func (l *EmbedLoader) LoadPack(_ context.Context, category string) (Pack, error) {
	data, err := fs.ReadFile(l.fsys, category+".yaml")
	if err != nil {
		return Pack{}, domain.ErrCategoryNotFound
	}
	return parsePack(data, category)
}

func (l *EmbedLoader) Categories(_ context.Context) ([]string, error) {
	return listPackNames(l.fsys)
}

// DirLoader serves packs from a directory of YAML files, one per
// category, named <category>.yaml.
type DirLoader struct {
	dir string
}

func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{dir: dir}
}

func (l *DirLoader) LoadPack(_ context.Context, category string) (Pack, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, category+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return Pack{}, domain.ErrCategoryNotFound
		}
		return Pack{}, fmt.Errorf("read pack %q: %w", category, err)
	}
	return parsePack(data, category)
}

func (l *DirLoader) Categories(_ context.Context) ([]string, error) {
	return listPackNames(os.DirFS(l.dir))
}

func listPackNames(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// parsePack decodes and validates one pack. Every question must carry a
// known difficulty and an answer that is one of its options; zero points
// default by difficulty.
func parsePack(data []byte, category string) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("parse pack %q: %w", category, err)
	}
	if pack.Category == "" {
		pack.Category = category
	}

	for i := range pack.Questions {
		q := &pack.Questions[i]
		q.Category = pack.Category
		if _, ok := domain.ParseDifficulty(string(q.Difficulty)); !ok || q.Difficulty == "" {
			return Pack{}, fmt.Errorf("%w: question %d has unknown difficulty %q", domain.ErrInvalidPack, q.ID, q.Difficulty)
		}
		if len(q.Options) == 0 {
			return Pack{}, fmt.Errorf("%w: question %d has no options", domain.ErrInvalidPack, q.ID)
		}
		if !contains(q.Options, q.Answer) {
			return Pack{}, fmt.Errorf("%w: question %d answer is not one of its options", domain.ErrInvalidPack, q.ID)
		}
		if q.Points == 0 {
			q.Points = defaultPoints[q.Difficulty]
		}
	}
	return pack, nil
}

func contains(options []string, want string) bool {
	for _, o := range options {
		if o == want {
			return true
		}
	}
	return false
}
