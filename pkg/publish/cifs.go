// Package publish copies finished text files to an SMB share.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hirochachacha/go-smb2"
	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("share connection closed")

var lopSecurity = 1000

type Options struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Port     int    `json:"port" yaml:"port"`
	Share    string `json:"share" yaml:"share"`
	BasePath string `json:"basepath" yaml:"basepath"`
}

type Cifs struct {
	options        Options
	connection     net.Conn
	session        *smb2.Session
	share          *smb2.Share
	cifsOpened     bool
	cifsAccessLock sync.Mutex
	closeChannel   chan struct{}
	wgClosed       *sync.WaitGroup
	logger         *logrus.Logger
}

var cifsOpenRetryDelay = 2 * time.Second
var cifsCheckConnectionDelay = 30 * time.Second
var cifsAccessPollDelay = 200 * time.Millisecond

func NewCifs(opts Options) *Cifs {
	if opts.Port == 0 {
		opts.Port = 445
	}

	c := &Cifs{
		options:      opts,
		closeChannel: make(chan struct{}),
		wgClosed:     new(sync.WaitGroup),
	}
	c.logger = logger.Logger(c)

	return c
}

// Start keeps a connection to the share open in the background, reconnecting
// when it drops.
func (c *Cifs) Start() error {
	c.wgClosed.Add(1)
	c.beginEnsureCifsOpen()
	return nil
}

func (c *Cifs) Stop() error {
	close(c.closeChannel)
	c.wgClosed.Wait()
	return c.Close()
}

func (c *Cifs) beginEnsureCifsOpen() {
	go func() {
		defer c.wgClosed.Done()
		for {
			{
				c.cifsAccessLock.Lock()

				if c.cifsOpened {
					_, err := c.share.ReadDir(c.basePath())
					if err != nil {
						c.logger.WithError(err).Warn("CIFS connection lost")
						c.closeNoLock()
						c.cifsOpened = false
					} else {
						c.cifsAccessLock.Unlock()
						if c.waitOrClose(cifsCheckConnectionDelay) {
							return
						}
						continue
					}
				}

				c.cifsAccessLock.Unlock()
			}

			for {
				c.logger.Info("Opening CIFS connection")
				err := c.openSingle()
				if err == nil {
					c.logger.Info("Opened CIFS connection")
					c.cifsAccessLock.Lock()
					c.cifsOpened = true
					c.cifsAccessLock.Unlock()
					if c.waitOrClose(cifsCheckConnectionDelay) {
						return
					}
					break
				} else {
					c.logger.WithError(err).Warn("Failed to open CIFS connection")
				}
				if c.waitOrClose(cifsOpenRetryDelay) {
					return
				}
			}
		}
	}()
}

func (c *Cifs) waitOrClose(duration time.Duration) (close bool) {
	select {
	case <-time.After(duration):
		return false
	case <-c.closeChannel:
		return true
	}
}

func (c *Cifs) openSingle() error {
	var err error
	c.connection, err = net.Dial("tcp", fmt.Sprintf("%s:%d", c.options.Hostname, c.options.Port))
	if err != nil {
		return err
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     c.options.Username,
			Password: c.options.Password,
		},
	}

	c.session, err = d.Dial(c.connection)
	if err != nil {
		c.closeNoLock()
		return err
	}

	c.share, err = c.session.Mount(c.options.Share)
	if err != nil {
		c.closeNoLock()
		return err
	}

	return nil
}

func (c *Cifs) Close() error {
	c.cifsAccessLock.Lock()
	defer c.cifsAccessLock.Unlock()
	c.cifsOpened = false
	return c.closeNoLock()
}

func (c *Cifs) closeNoLock() error {
	if c.share != nil {
		c.share.Umount()
		c.share = nil
	}
	if c.session != nil {
		c.session.Logoff()
		c.session = nil
	}
	if c.connection != nil {
		c.connection.Close()
		c.connection = nil
	}
	return nil
}

// UploadFile copies a local file into the share's base path. An existing file
// of the same name is never overwritten; name-1.txt, name-2.txt ... are tried
// instead. It gives up when ctx is done before the share becomes reachable.
func (c *Cifs) UploadFile(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.UploadReader(ctx, filepath.Base(localPath), f)
}

func (c *Cifs) UploadReader(ctx context.Context, p string, r io.Reader) error {
	return c.accessShare(ctx, func(share *smb2.Share) error {
		var filePath string
		for i := range lopSecurity {
			filePath = c.candidatePath(p, i)
			_, err := share.Stat(filePath)
			if err != nil {
				break
			}
			c.logger.WithField("path", filePath).Debug("File already exists")
		}

		c.logger.WithField("path", filePath).Info("Uploading file")

		f, err := share.Create(filePath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(f, r)
		if err == nil {
			c.logger.WithField("path", filePath).Info("File upload completed")
		}
		return err
	})
}

func (c *Cifs) candidatePath(p string, n int) string {
	fileName := path.Base(filepath.ToSlash(p))
	if n > 0 {
		ext := path.Ext(fileName)
		fileName = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(fileName, ext), n, ext)
	}

	return path.Join(c.basePath(), fileName)
}

func (c *Cifs) basePath() string {
	if c.options.BasePath == "" {
		return "."
	}
	return c.options.BasePath
}

// accessShare runs handler once the connection is open. It waits for the
// reconnect loop until ctx is done or the client is stopped.
func (c *Cifs) accessShare(ctx context.Context, handler func(share *smb2.Share) error) error {
	for {
		c.cifsAccessLock.Lock()
		if c.cifsOpened {
			defer c.cifsAccessLock.Unlock()
			return handler(c.share)
		}
		c.cifsAccessLock.Unlock()

		select {
		case <-time.After(cifsAccessPollDelay):
		case <-c.closeChannel:
			return ErrClosed
		case <-ctx.Done():
			return fmt.Errorf("share %s not reachable: %w", c.options.Share, ctx.Err())
		}
	}
}
