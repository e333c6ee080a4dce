package v1

import (
	"context"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// cdpDriver drives a window through the Chrome DevTools Protocol.
type cdpDriver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc
}

// attachCDP connects to the browser endpoint wsURL and attaches to targetID.
// parent bounds the lifetime of the session.
func attachCDP(parent context.Context, wsURL, targetID string) (*cdpDriver, error) {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(parent, wsURL, chromedp.NoModifyURL)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithTargetID(target.ID(targetID)))

	// The first Run establishes the connection.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		cancelAlloc()
		return nil, err
	}
	return &cdpDriver{ctx: ctx, cancel: cancel, cancelAlloc: cancelAlloc}, nil
}

// scoped runs actions on the session, bounded additionally by ctx.
func (d *cdpDriver) scoped(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (d *cdpDriver) WaitVisible(ctx context.Context, selector string) error {
	return d.scoped(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (d *cdpDriver) Click(ctx context.Context, selector string) error {
	return d.scoped(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

func (d *cdpDriver) Fill(ctx context.Context, selector, text string) error {
	return d.scoped(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
}

func (d *cdpDriver) TextContent(ctx context.Context, selector string) (string, error) {
	var text string
	err := d.scoped(ctx, chromedp.TextContent(selector, &text, chromedp.ByQuery))
	return text, err
}

func (d *cdpDriver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := d.scoped(ctx, chromedp.CaptureScreenshot(&buf))
	return buf, err
}

// Close cancels the session, which closes the attached window target.
// The application process is stopped separately by App.Close.
func (d *cdpDriver) Close() error {
	d.cancel()
	d.cancelAlloc()
	return nil
}
