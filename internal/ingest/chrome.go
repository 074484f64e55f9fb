package ingest

import (
	"context"

	"github.com/chromedp/chromedp"
)

// jobPostingJS finds a JobPosting JSON-LD block in the rendered DOM and
// returns it as JSON text, or an empty string. Arrays containing a JobPosting
// are returned whole; the caller picks the matching element.
const jobPostingJS = `(() => {
	const scripts = document.querySelectorAll('script[type="application/ld+json"]');
	for (const script of scripts) {
		try {
			const data = JSON.parse(script.textContent);
			if (data['@type'] === 'JobPosting' ||
				(Array.isArray(data) && data.some(item => item['@type'] === 'JobPosting'))) {
				return JSON.stringify(data);
			}
		} catch (e) {}
	}
	return "";
})()`

// applyLinkJS returns the href of the first rendered anchor labeled "apply".
const applyLinkJS = `(() => {
	const links = Array.from(document.querySelectorAll('a'))
		.filter(a => a.textContent.toLowerCase().includes('apply'));
	return links.length > 0 ? links[0].href : "";
})()`

// chromeSession drives one headless Chrome process through chromedp. Both
// cancel funcs must run on Close to reap the browser process.
type chromeSession struct {
	ctx         context.Context
	cancelTask  context.CancelFunc
	cancelAlloc context.CancelFunc
}

func newChromeSession(ctx context.Context, headless bool) (session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	return &chromeSession{ctx: taskCtx, cancelTask: cancelTask, cancelAlloc: cancelAlloc}, nil
}

func (s *chromeSession) Close() error {
	s.cancelTask()
	s.cancelAlloc()
	return nil
}

func (s *chromeSession) Render(_ context.Context, url string) (renderedPage, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, browserNavTimeout)
	defer cancel()

	var page renderedPage
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Fixed settle delay: client-side rendering often continues after
		// document ready.
		chromedp.Sleep(browserSettle),
		chromedp.Evaluate(jobPostingJS, &page.JSONLD),
		chromedp.Evaluate(applyLinkJS, &page.ApplyURL),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
	)
	if err != nil {
		return renderedPage{}, err
	}
	return page, nil
}
