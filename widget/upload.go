package widget

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/delaneyj/propgraph/prop"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrFileExists      = errors.New("file exists, not overwriting")
	ErrNothingToUpload = errors.New("Nothing to upload")
)

// UploadedFile is one entry of a FileUpload widget's value.
type UploadedFile struct {
	Name         string
	Content      []byte
	LastModified time.Time
}

type UploadOption func(*Upload)

// WithFileName stores every upload under name instead of the original file name.
func WithFileName(name string) UploadOption {
	return func(u *Upload) { u.fileName = name }
}

func WithOverwrite() UploadOption {
	return func(u *Upload) { u.overwrite = true }
}

func WithLogger(logger *zap.Logger) UploadOption {
	return func(u *Upload) { u.logger = logger }
}

// Upload is a file upload control with Clear and Confirm buttons. Both
// buttons are disabled until a file is pending, and the upload input is
// disabled while one is.
type Upload struct {
	Input   *Widget
	Clear   *Widget
	Confirm *Widget

	HasPendingFile *prop.Computed

	fs        afero.Fs
	dir       string
	fileName  string
	overwrite bool
	logger    *zap.Logger

	onUpload     []func(path string)
	onError      []func(msg string)
	lastUploaded string
}

func NewUpload(fs afero.Fs, dir string, opts ...UploadOption) (*Upload, error) {
	u := &Upload{
		Input: New("FileUpload", map[string]any{
			"value":    map[string]UploadedFile{},
			"disabled": false,
		}),
		Clear:   NewButton("Clear"),
		Confirm: NewButton("Upload"),
		fs:      fs,
		dir:     dir,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}

	u.HasPendingFile = prop.NewComputed(prop.UseNone())
	if err := u.HasPendingFile.AddInput(u.Input, prop.Name("files")); err != nil {
		return nil, err
	}
	if err := u.HasPendingFile.SetOutput(prop.Fn1("files", func(files map[string]UploadedFile) bool {
		return len(files) > 0
	})); err != nil {
		return nil, err
	}

	buttons := prop.NewSynced(nil)
	if err := buttons.AddInput(prop.Not(u.HasPendingFile)); err != nil {
		return nil, err
	}
	for _, b := range []*Widget{u.Clear, u.Confirm} {
		if err := buttons.AddOutput(b, prop.Accessor("disabled"), prop.Sync(true)); err != nil {
			return nil, err
		}
	}

	input := prop.NewSynced(nil)
	if err := input.AddInput(u.HasPendingFile); err != nil {
		return nil, err
	}
	if err := input.AddOutput(u.Input, prop.Accessor("disabled"), prop.Sync(true)); err != nil {
		return nil, err
	}

	u.Clear.OnClick(func(*Widget) error { return u.ClearPending() })
	u.Confirm.OnClick(func(*Widget) error { return u.ConfirmPending() })
	return u, nil
}

func (u *Upload) OnUpload(fn func(path string)) {
	u.onUpload = append(u.onUpload, fn)
}

func (u *Upload) OnError(fn func(msg string)) {
	u.onError = append(u.onError, fn)
}

// LastUploaded is the path of the most recently confirmed file.
func (u *Upload) LastUploaded() string {
	return u.lastUploaded
}

// Pick sets the pending files, as a user choosing files in a browser would.
func (u *Upload) Pick(files ...UploadedFile) error {
	value := make(map[string]UploadedFile, len(files))
	for _, f := range files {
		value[f.Name] = f
	}
	return u.Input.Set(prop.ValueAccessor, value)
}

func (u *Upload) ClearPending() error {
	return u.Input.Set(prop.ValueAccessor, map[string]UploadedFile{})
}

func (u *Upload) pending() (UploadedFile, bool) {
	files, _ := u.Input.Value().(map[string]UploadedFile)
	if len(files) == 0 {
		return UploadedFile{}, false
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return files[names[0]], true
}

// ConfirmPending writes the pending file into the upload directory, keeping
// its modification time, then clears the input. With nothing pending the
// error listeners are told so.
func (u *Upload) ConfirmPending() error {
	f, ok := u.pending()
	if !ok {
		u.fail(u.dir, ErrNothingToUpload)
		return ErrNothingToUpload
	}

	name := f.Name
	if u.fileName != "" {
		name = u.fileName
	}
	dest := filepath.Join(u.dir, filepath.Base(name))

	if err := u.write(dest, f); err != nil {
		u.fail(dest, err)
		return err
	}

	u.lastUploaded = dest
	u.logger.Info("uploaded file", zap.String("path", dest), zap.Int("bytes", len(f.Content)))
	for _, fn := range u.onUpload {
		fn(dest)
	}
	return u.ClearPending()
}

func (u *Upload) write(dest string, f UploadedFile) error {
	if err := u.fs.MkdirAll(u.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if !u.overwrite {
		exists, err := afero.Exists(u.fs, dest)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s: %w", dest, ErrFileExists)
		}
	}
	if err := afero.WriteFile(u.fs, dest, f.Content, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	if !f.LastModified.IsZero() {
		if err := u.fs.Chtimes(dest, f.LastModified, f.LastModified); err != nil {
			return fmt.Errorf("set upload mtime: %w", err)
		}
	}
	return nil
}

func (u *Upload) fail(dest string, err error) {
	u.logger.Warn("upload failed", zap.String("path", dest), zap.Error(err))
	for _, fn := range u.onError {
		fn(err.Error())
	}
}
