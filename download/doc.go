// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package download transfers resources to files with progress reporting
and cancel/resume support, on top of the same HTTPDoer transport the
apix client uses.

A Download moves through the states Idle → Running → {Completed,
Failed, Cancelled}. Zero or more progress callbacks fire while the
transfer is Running, strictly before the single terminal Result is
delivered on the Done channel:

	d := download.New(nil, "https://cdn.example.com/blob.bin", download.Options{
		CacheDir:   cacheDir,
		OnProgress: func(written, total int64) { ... },
	})
	if err := d.Start(ctx); err != nil {
		...
	}
	res := <-d.Done()

Cancelling a running download whose server supports range requests
yields resume data, an opaque serializable blob from which a new
Download continues where the old one stopped, optionally on a fresh
transport session:

	d.Cancel()
	res := <-d.Done()
	if res.State == download.Cancelled && res.Resume != nil {
		d2 := download.Resume(nil, res.Resume, opts)
		_ = d2.Start(ctx)
		res = <-d2.Done()
	}

On completion the transferred file is relocated into the configured
cache directory and the terminal Result names its final location.
*/
package download
