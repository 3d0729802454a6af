package remote

import "io"

// progressReader reports how much of a known-size body has been read.
// Percentages are capped at 99 so the terminal 100 stays reserved for the
// pipeline's success transition.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(pct int)
}

func newProgressReader(r io.Reader, total int64, report func(int)) io.Reader {
	if report == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 99 {
			pct = 99
		}
		p.report(pct)
	}
	return n, err
}
