// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package download

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gogama/apix"
	"github.com/gogama/apix/transient"
)

// A State is the lifecycle state of a Download.
type State int

const (
	// Idle is the state of a Download which has not been started.
	Idle State = iota
	// Running is the state of a Download whose transfer is in flight.
	Running
	// Completed is the terminal state of a Download whose file has
	// been fully transferred and relocated into the cache directory.
	Completed
	// Failed is the terminal state of a Download which ended in a
	// transport, status, or file error.
	Failed
	// Cancelled is the terminal state of a Download stopped by Cancel.
	// When the transfer had made resumable progress, the terminal
	// Result carries resume data from which a new Download can pick
	// up where this one left off.
	Cancelled
)

var stateNames = []string{
	"Idle",
	"Running",
	"Completed",
	"Failed",
	"Cancelled",
}

// Name returns the name of the state.
func (s State) Name() string {
	return stateNames[int(s)]
}

// String returns the name of the state.
func (s State) String() string {
	return s.Name()
}

// ResumeData captures the partial progress of a cancelled Download.
// Treat it as an opaque blob: encode it with Encode, store it, and
// later hand it to Resume, optionally on a fresh transport session.
type ResumeData struct {
	URL      string `json:"url"`
	TempFile string `json:"temp_file"`
	Offset   int64  `json:"offset"`
	Total    int64  `json:"total"`
	ETag     string `json:"etag,omitempty"`
}

// Encode serializes the resume data for storage.
func (r *ResumeData) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeResumeData deserializes resume data produced by Encode.
func DecodeResumeData(b []byte) (*ResumeData, error) {
	var r ResumeData
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("download: decode resume data: %w", err)
	}
	if r.URL == "" {
		return nil, errors.New("download: resume data has no URL")
	}
	return &r, nil
}

// Options configures a Download.
type Options struct {
	// CacheDir is the directory the finished file is relocated into.
	// It is required.
	CacheDir string
	// TempDir is the directory the in-flight temporary file is written
	// to. It defaults to os.TempDir(). To make the final relocation a
	// pure rename, put TempDir on the same filesystem as CacheDir;
	// otherwise the relocation falls back to a copy.
	TempDir string
	// OnProgress, if non-nil, is called after every chunk written with
	// the running byte count and the expected total (0 when the server
	// did not report one). Progress calls happen zero or more times,
	// strictly before the terminal result is delivered.
	OnProgress func(written, total int64)
	// OnResume, if non-nil, is called once when a resumed transfer
	// actually continues from its recorded offset rather than
	// restarting from scratch.
	OnResume func(offset, total int64)
}

// A Result is the single terminal event of a Download, delivered on
// the Done channel after the transfer leaves the Running state. State
// is Completed, Failed, or Cancelled; File is set for Completed and
// Err for Failed. Resume is set for Cancelled downloads with
// resumable progress, and for Failed downloads whose error is a
// transient transport condition the same progress could survive.
type Result struct {
	State  State
	File   string
	Err    error
	Resume *ResumeData
}

// A Download transfers one resource to a file through an HTTPDoer,
// with progress reporting and cancel/resume support. It moves through
// the states Idle → Running → {Completed, Failed, Cancelled}; Start
// begins the transfer and the terminal Result arrives on Done.
//
// A Download is single-use: to continue a cancelled transfer, build a
// new one with Resume.
type Download struct {
	doer apix.HTTPDoer
	url  string
	opts Options

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	cancelled bool

	done chan Result

	// Transfer bookkeeping, owned by the run goroutine once started.
	tmp     string
	offset  int64
	total   int64
	etag    string
	rangeOK bool
}

// New creates an Idle download of url. If doer is nil,
// http.DefaultClient is used.
func New(doer apix.HTTPDoer, url string, opts Options) *Download {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Download{
		doer: doer,
		url:  url,
		opts: opts,
		done: make(chan Result, 1),
	}
}

// Resume creates an Idle download which continues from the partial
// progress recorded in data. The doer may be a fresh transport
// session; it does not need to be the one the original download used.
func Resume(doer apix.HTTPDoer, data *ResumeData, opts Options) *Download {
	d := New(doer, data.URL, opts)
	d.tmp = data.TempFile
	d.offset = data.Offset
	d.total = data.Total
	d.etag = data.ETag
	return d
}

// State returns the current lifecycle state.
func (d *Download) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Done returns the channel the terminal Result is delivered on. The
// channel receives exactly one value per Download.
func (d *Download) Done() <-chan Result {
	return d.done
}

// Start moves the download from Idle to Running and begins the
// transfer in a background goroutine. It fails if the download has
// already been started or the options are unusable.
func (d *Download) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("download: nil context")
	}
	if d.opts.CacheDir == "" {
		return errors.New("download: no cache directory")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return fmt.Errorf("download: already started (state %s)", d.state)
	}
	ctx, d.cancel = context.WithCancel(ctx)
	d.state = Running
	go d.run(ctx)
	return nil
}

// Cancel stops a Running download. The terminal Result arrives on Done
// with state Cancelled and, when the transfer had made resumable
// progress, resume data. Cancel does nothing in any other state.
func (d *Download) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return
	}
	d.cancelled = true
	d.cancel()
}

func (d *Download) run(ctx context.Context) {
	res := d.transfer(ctx)
	d.mu.Lock()
	d.state = res.State
	d.mu.Unlock()
	d.done <- res
}

func (d *Download) transfer(ctx context.Context) Result {
	if d.tmp == "" {
		dir := d.opts.TempDir
		if dir == "" {
			dir = os.TempDir()
		}
		d.tmp = filepath.Join(dir, "apix-download-"+uuid.NewString())
	}

	f, err := os.OpenFile(d.tmp, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Result{State: Failed, Err: err}
	}

	// A recorded offset is only honored if the temporary file still
	// holds at least that many bytes.
	resuming := d.offset > 0
	if resuming {
		if fi, serr := f.Stat(); serr != nil || fi.Size() < d.offset {
			resuming = false
			d.offset = 0
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		_ = f.Close()
		return Result{State: Failed, Err: err}
	}
	if resuming {
		req.Header.Set("Range", "bytes="+strconv.FormatInt(d.offset, 10)+"-")
		if d.etag != "" {
			req.Header.Set("If-Range", d.etag)
		}
	}

	resp, err := d.doer.Do(req)
	if err != nil {
		_ = f.Close()
		return d.interrupted(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusPartialContent:
		if _, err = f.Seek(d.offset, io.SeekStart); err != nil {
			_ = f.Close()
			return Result{State: Failed, Err: err}
		}
		if total := contentRangeTotal(resp.Header.Get("Content-Range")); total > 0 {
			d.total = total
		} else if resp.ContentLength > 0 {
			d.total = d.offset + resp.ContentLength
		}
		d.rangeOK = true
		if resuming && d.opts.OnResume != nil {
			d.opts.OnResume(d.offset, d.total)
		}
	case http.StatusOK:
		// Full body: the server either was not asked for a range or
		// declined it (e.g. the resource changed), so restart.
		d.offset = 0
		if err = f.Truncate(0); err != nil {
			_ = f.Close()
			return Result{State: Failed, Err: err}
		}
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return Result{State: Failed, Err: err}
		}
		if resp.ContentLength > 0 {
			d.total = resp.ContentLength
		}
		d.rangeOK = strings.EqualFold(resp.Header.Get("Accept-Ranges"), "bytes")
	default:
		_ = f.Close()
		_ = os.Remove(d.tmp)
		return Result{State: Failed, Err: &apix.StatusError{Code: resp.StatusCode, Response: resp}}
	}
	if et := resp.Header.Get("ETag"); et != "" {
		d.etag = et
	}

	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				_ = f.Close()
				return Result{State: Failed, Err: werr}
			}
			d.offset += int64(n)
			if d.opts.OnProgress != nil {
				d.opts.OnProgress(d.offset, d.total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			_ = f.Close()
			return d.interrupted(rerr)
		}
	}

	if err = f.Close(); err != nil {
		return Result{State: Failed, Err: err}
	}
	return d.relocate()
}

// interrupted decides the terminal result of a transfer that stopped
// before the body was fully read. A cancel by the caller ends in
// Cancelled; anything else ends in Failed. Either way, resume data is
// attached when the recorded progress can actually continue: the
// server must serve ranges, and a failure (as opposed to a cancel)
// must come from a transient transport condition, since resuming
// after a non-transient error would only fail again.
func (d *Download) interrupted(err error) Result {
	d.mu.Lock()
	cancelled := d.cancelled
	d.mu.Unlock()
	resumable := d.offset > 0 && d.rangeOK
	if cancelled {
		if resumable {
			return Result{State: Cancelled, Resume: d.resumeData()}
		}
		_ = os.Remove(d.tmp)
		return Result{State: Cancelled}
	}
	if resumable && transient.Categorize(err) != transient.Not {
		return Result{State: Failed, Err: err, Resume: d.resumeData()}
	}
	return Result{State: Failed, Err: err}
}

func (d *Download) resumeData() *ResumeData {
	return &ResumeData{
		URL:      d.url,
		TempFile: d.tmp,
		Offset:   d.offset,
		Total:    d.total,
		ETag:     d.etag,
	}
}

// relocate moves the fully transferred temporary file into the cache
// directory. The transport reported success by this point, so any
// failure to produce a usable file surfaces as a missing-data error.
func (d *Download) relocate() Result {
	if _, err := os.Stat(d.tmp); err != nil {
		return Result{State: Failed, Err: &apix.DataError{Op: "download"}}
	}
	if err := os.MkdirAll(d.opts.CacheDir, 0o755); err != nil {
		return Result{State: Failed, Err: &apix.DataError{Op: "download"}}
	}
	target := filepath.Join(d.opts.CacheDir, d.fileName())
	if err := os.Rename(d.tmp, target); err != nil {
		// Rename fails across filesystems; fall back to a copy.
		if err = copyFile(d.tmp, target); err != nil {
			return Result{State: Failed, Err: &apix.DataError{Op: "download"}}
		}
		_ = os.Remove(d.tmp)
	}
	return Result{State: Completed, File: target}
}

func (d *Download) fileName() string {
	if u, err := urlpkg.Parse(d.url); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return uuid.NewString()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// contentRangeTotal extracts the complete length from a Content-Range
// header like "bytes 100-999/1000". It returns 0 when the total is
// absent or unknown ("*").
func contentRangeTotal(h string) int64 {
	_, totalPart, found := strings.Cut(h, "/")
	if !found {
		return 0
	}
	total, err := strconv.ParseInt(strings.TrimSpace(totalPart), 10, 64)
	if err != nil {
		return 0
	}
	return total
}
