package omr

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/tsawler/omr/bubbles"
	"github.com/tsawler/omr/ident"
	"github.com/tsawler/omr/imaging"
	"github.com/tsawler/omr/layout"
	"github.com/tsawler/omr/logging"
	"github.com/tsawler/omr/ocr"
	"github.com/tsawler/omr/scoring"
)

// Request holds the per-sheet scan parameters.
type Request struct {
	// Questions is the number of questions printed on the sheet, or 0 when
	// unknown. It fixes where the right column's numbering starts.
	Questions int

	// Options is the number of options per question; 0 uses the layout
	// default.
	Options int
}

// Scanner runs the recognition pipeline. It holds only immutable settings
// and is safe for concurrent use.
type Scanner struct {
	avail Availability

	logger     *slog.Logger
	preprocess imaging.Config
	deskew     imaging.DeskewConfig
	detector   bubbles.Config
	layout     layout.Config
	policy     scoring.Policy
	reader     *ident.Reader
	useOCR     bool

	// configErr is set by New when the options left an unusable setting
	configErr error
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithZone sets the identifier area that is blanked before detection and
// searched by the printed text fallback.
func WithZone(zone imaging.Zone) Option {
	return func(s *Scanner) {
		s.preprocess.Zone = zone
	}
}

// WithCanonicalWidth sets the working width all pixel thresholds refer to.
func WithCanonicalWidth(width int) Option {
	return func(s *Scanner) {
		s.preprocess.CanonicalWidth = width
	}
}

// WithBinarizer replaces the binarizer chosen by the availability probe.
func WithBinarizer(b imaging.Binarizer) Option {
	return func(s *Scanner) {
		if b != nil {
			s.preprocess.Binarizer = b
		}
	}
}

// WithDeskew configures fiducial based rotation correction.
func WithDeskew(cfg imaging.DeskewConfig) Option {
	return func(s *Scanner) {
		s.deskew = cfg
	}
}

// WithDetector sets the bubble shape filter. Unset bounds keep their
// defaults.
func WithDetector(cfg bubbles.Config) Option {
	return func(s *Scanner) {
		s.detector = cfg.WithDefaults()
	}
}

// WithLayout sets the row and column parameters. Unset fields keep their
// defaults.
func WithLayout(cfg layout.Config) Option {
	return func(s *Scanner) {
		s.layout = cfg.WithDefaults()
	}
}

// WithPolicy sets the mark selection policy.
func WithPolicy(p scoring.Policy) Option {
	return func(s *Scanner) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithOCRFallback enables or disables reading the printed identifier when
// the QR code fails. It only has an effect when the probe found OCR.
func WithOCRFallback(enabled bool) Option {
	return func(s *Scanner) {
		s.useOCR = enabled
	}
}

// WithIdentifierFallback installs a custom printed text recogniser.
func WithIdentifierFallback(fn ident.RecognizeFunc) Option {
	return func(s *Scanner) {
		s.reader.Fallback = fn
	}
}

// New creates a scanner for the probed environment.
func New(avail Availability, opts ...Option) *Scanner {
	s := &Scanner{
		avail:      avail,
		logger:     logging.Nop(),
		preprocess: imaging.DefaultConfig(),
		deskew:     imaging.DefaultDeskewConfig(),
		detector:   bubbles.DefaultConfig(),
		layout:     layout.DefaultConfig(),
		policy:     scoring.FirstMax{Threshold: scoring.DefaultThreshold},
		reader:     ident.NewReader(),
		useOCR:     avail.OCR,
	}
	if avail.binarizer != nil {
		s.preprocess.Binarizer = avail.binarizer
	}

	for _, opt := range opts {
		opt(s)
	}

	s.configErr = s.validate()

	s.reader.Zone = s.preprocess.Zone
	if s.reader.Fallback == nil && s.useOCR && avail.OCR {
		s.reader.Fallback = ocr.RecognizeIdentifier
	}

	return s
}

// Availability returns the environment the scanner was built for
func (s *Scanner) Availability() Availability {
	return s.avail
}

// ScanFile scans an image file.
func (s *Scanner) ScanFile(path string, req Request) Result {
	if r, ok := s.unavailable(); ok {
		return r
	}
	img, f, err := imaging.Open(path)
	if err != nil {
		s.logger.Warn("image rejected", "path", path, "error", err)
		return failed(nil, err.Error(), err)
	}
	s.logger.Debug("image loaded", "path", path, "format", f.String())
	return s.scan(img, req)
}

// ScanBytes scans encoded image data.
func (s *Scanner) ScanBytes(data []byte, req Request) Result {
	if r, ok := s.unavailable(); ok {
		return r
	}
	img, f, err := imaging.Load(data)
	if err != nil {
		s.logger.Warn("image rejected", "bytes", len(data), "error", err)
		return failed(nil, err.Error(), err)
	}
	s.logger.Debug("image loaded", "bytes", len(data), "format", f.String())
	return s.scan(img, req)
}

// ScanImage scans a decoded image.
func (s *Scanner) ScanImage(img image.Image, req Request) Result {
	if r, ok := s.unavailable(); ok {
		return r
	}
	return s.scan(img, req)
}

// Err reports a configuration error found by New. A scanner with a
// configuration error refuses every scan.
func (s *Scanner) Err() error {
	return s.configErr
}

func (s *Scanner) validate() error {
	if err := s.detector.Validate(); err != nil {
		return fmt.Errorf("%w: detector: %v", ErrInvalidConfig, err)
	}
	if err := s.layout.Validate(); err != nil {
		return fmt.Errorf("%w: layout: %v", ErrInvalidConfig, err)
	}
	if s.preprocess.CanonicalWidth < 0 {
		return fmt.Errorf("%w: canonical width must not be negative, got %d", ErrInvalidConfig, s.preprocess.CanonicalWidth)
	}
	return nil
}

func (s *Scanner) unavailable() (Result, bool) {
	if s.configErr != nil {
		return failed(nil, s.configErr.Error(), s.configErr), true
	}
	if s.avail.Ready() {
		return Result{}, false
	}
	reason := s.avail.Reason()
	return failed(nil, "scanner unavailable: "+reason, fmt.Errorf("%w: %s", ErrUnavailable, reason)), true
}

func (s *Scanner) scan(img image.Image, req Request) Result {
	if img == nil || img.Bounds().Empty() {
		err := fmt.Errorf("%w: empty image", imaging.ErrInvalidImage)
		return failed(nil, err.Error(), err)
	}

	ref, source := s.readIdentifier(img)

	sheet, err := imaging.Preprocess(img, s.preprocess)
	if err != nil {
		s.logger.Warn("preprocess failed", "error", err)
		return failed(ref, err.Error(), err)
	}
	s.logger.Debug("sheet preprocessed",
		"width", sheet.Binary.Bounds().Dx(),
		"height", sheet.Binary.Bounds().Dy(),
		"scale", sheet.Scale,
		"binarizer", s.preprocess.Binarizer.Name())

	bin := sheet.Binary
	components := bubbles.Components(bin, s.detector.ExternalOnly)

	var angle float64
	if s.deskew.Enabled {
		var applied bool
		bin, angle, applied = imaging.Deskew(bin, components, s.deskew)
		if applied {
			components = bubbles.Components(bin, s.detector.ExternalOnly)
		}
		s.logger.Debug("deskew", "angle", angle, "applied", applied)
		if !applied {
			angle = 0
		}
	}

	regions := bubbles.NewDetectorWithConfig(s.detector).Filter(components)
	s.logger.Debug("bubbles detected", "components", len(components), "candidates", len(regions))

	result := newResult(ref)
	result.IdentifierSource = source
	result.SkewAngle = angle
	if ref != nil {
		for _, tok := range ref.Skipped {
			result.Notes = append(result.Notes, fmt.Sprintf("identifier token %q ignored", tok))
		}
	}

	if len(regions) == 0 {
		return s.noMarks(result, bubbles.ErrNoRegions)
	}

	grid := layout.NewResolverWithConfig(s.layoutFor(req)).Resolve(regions, max(req.Questions, 0))
	result.Notes = append(result.Notes, grid.Notes...)
	s.logger.Debug("layout resolved", "columns", grid.Columns, "rows", len(grid.Rows), "notes", len(grid.Notes))

	if len(grid.Rows) == 0 {
		return s.noMarks(result, errors.New("no bubble rows"))
	}

	outcomes, errs := scoring.NewScorerWithPolicy(s.policy).ScoreLayout(bin, grid)
	for _, err := range errs {
		result.Notes = append(result.Notes, err.Error())
	}

	for _, o := range outcomes {
		s.logger.Debug("question scored", "question", o.Question, "status", o.Status.String(), "label", o.Label, "scores", o.Scores)
		switch o.Status {
		case scoring.Marked:
			result.Answers[o.Question] = o.Label
		case scoring.Ambiguous:
			result.Notes = append(result.Notes, fmt.Sprintf("question %d ambiguous: scores %v", o.Question, o.Scores))
		}
	}

	result.Outcomes = outcomes
	result.Success = true
	s.logger.Info("sheet scanned", "identifier", refString(ref), "answers", len(result.Answers), "notes", len(result.Notes))
	return result
}

func (s *Scanner) readIdentifier(img image.Image) (*ident.Reference, ident.Source) {
	ref, source, err := s.reader.Read(img)
	switch {
	case err == nil:
		s.logger.Debug("identifier decoded", "identifier", ref.String(), "source", string(source))
	case errors.Is(err, ident.ErrNotFound):
		s.logger.Debug("identifier not found", "error", err)
	default:
		s.logger.Warn("identifier read failed", "error", err)
	}
	return ref, source
}

func (s *Scanner) noMarks(result Result, cause error) Result {
	result.Success = false
	result.Diagnostic = ErrNoMarks.Error()
	result.Err = fmt.Errorf("%w: %v", ErrNoMarks, cause)
	s.logger.Info("sheet rejected", "identifier", refString(result.Identifier), "reason", cause.Error())
	return result
}

// layoutFor applies the request's option count to the layout settings
func (s *Scanner) layoutFor(req Request) layout.Config {
	cfg := s.layout
	if req.Options > 0 {
		cfg.Options = req.Options
		if cfg.MinOptions > cfg.Options {
			cfg.MinOptions = cfg.Options
		}
	}
	return cfg
}

func refString(ref *ident.Reference) string {
	if ref == nil {
		return ""
	}
	return ref.String()
}
