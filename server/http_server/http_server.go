package http_server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"base64_converter/batch"
	"base64_converter/compression"
	"base64_converter/config"
	"base64_converter/converter"
	"base64_converter/encoding"
	"base64_converter/export"
)

const maxJSONBody = 1 << 20

type Server struct {
	cfg   *config.Config
	namer export.Namer
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg, namer: cfg.Namer()}
}

type convertRequest struct {
	Input      any    `json:"input"`
	Format     string `json:"format"`
	LineBreaks bool   `json:"lineBreaks"`
	LineLength int    `json:"lineLength"`
	AutoDetect *bool  `json:"autoDetect"`
}

type batchRequest struct {
	Mode   string `json:"mode"`
	Format string `json:"format"`
	Inputs []any  `json:"inputs"`
}

type batchResponse struct {
	Mode    encoding.Mode   `json:"mode"`
	Format  encoding.Format `json:"format"`
	Items   []batch.Item    `json:"items"`
	Summary batch.Summary   `json:"summary"`
}

type fileDecodeRequest struct {
	Input    any    `json:"input"`
	FileName string `json:"fileName"`
}

type downloadRequest struct {
	Mode   string `json:"mode"`
	Format string `json:"format"`
	Output string `json:"output"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func isRemoteAddrLocal(remoteAddr string) bool {
	for _, prefix := range []string{"127.", "192.168.", "10.", "localhost", "[::1]"} {
		if strings.HasPrefix(remoteAddr, prefix) {
			return true
		}
	}
	return false
}

func clientAddr(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" && isRemoteAddrLocal(r.RemoteAddr) {
		return realIP
	}
	return r.RemoteAddr
}

func requestLogger(r *http.Request) *logrus.Entry {
	if logr, ok := r.Context().Value(loggerKey{}).(*logrus.Entry); ok {
		return logr
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Handler returns the API routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/encode", s.handleConvert(encoding.ModeEncode))
	mux.HandleFunc("POST /api/decode", s.handleConvert(encoding.ModeDecode))
	mux.HandleFunc("POST /api/detect", s.handleDetect)
	mux.HandleFunc("POST /api/format", s.handleFormat)
	mux.HandleFunc("GET /api/size", s.handleSize)
	mux.HandleFunc("POST /api/batch", s.handleBatch)
	mux.HandleFunc("POST /api/file/encode", s.handleFileEncode)
	mux.HandleFunc("POST /api/file/decode", s.handleFileDecode)
	mux.HandleFunc("POST /api/download", s.handleDownload)
	return withLogging(mux)
}

func NewHandler(cfg *config.Config) http.Handler {
	return New(cfg).Handler()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(mode encoding.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logr := requestLogger(r)
		var req convertRequest
		if !s.readJSON(w, r, &req) {
			return
		}
		format, err := encoding.ParseFormat(req.Format)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		input, err := encoding.InputFromValue(req.Input)
		if err != nil {
			logr.WithError(err).Warn("Rejected input")
			s.writeJSON(w, r, http.StatusBadRequest, encoding.ResultFromError(err))
			return
		}

		opts := converter.DefaultOptions()
		opts.LineBreaks = req.LineBreaks
		opts.LineLength = s.cfg.LineLength
		if req.LineLength > 0 {
			opts.LineLength = req.LineLength
		}
		if req.AutoDetect != nil {
			opts.AutoDetect = *req.AutoDetect
		}

		out := converter.Convert(input, mode, format, opts)
		logr.WithFields(out.LogrusFields()).Info("Converted")
		status := http.StatusOK
		if !out.Success {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, r, status, out)
	}
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	input, err := encoding.InputFromValue(req.Input)
	if err != nil {
		s.writeJSON(w, r, http.StatusOK, map[string]encoding.Format{"format": encoding.UnknownFormat})
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]encoding.Format{"format": encoding.DetectInputFormatEnhanced(input)})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	input, err := encoding.InputFromValue(req.Input)
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, encoding.ResultFromError(err))
		return
	}
	lineLength := s.cfg.LineLength
	if req.LineLength > 0 {
		lineLength = req.LineLength
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"data": encoding.FormatBase64(input, lineLength)})
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseInt(r.URL.Query().Get("bytes"), 10, 64)
	if err != nil || n < 0 {
		s.writeError(w, r, http.StatusBadRequest, "bytes must be a non-negative integer")
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"size": encoding.FormatFileSize(n)})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	logr := requestLogger(r)
	var req batchRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	mode, err := encoding.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	format, err := encoding.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Inputs) == 0 {
		s.writeError(w, r, http.StatusBadRequest, "inputs must not be empty")
		return
	}
	if s.cfg.MaxBatchItems > 0 && len(req.Inputs) > s.cfg.MaxBatchItems {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("too many inputs: %d > %d", len(req.Inputs), s.cfg.MaxBatchItems))
		return
	}

	items := batch.ProcessValues(req.Inputs, mode, format)
	summary := batch.Summarize(items)
	logr.WithFields(logrus.Fields{
		"mode":      mode,
		"format":    format,
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("Batch converted")

	if r.URL.Query().Get("export") == "csv" {
		download, err := s.namer.Batch(mode, format, items)
		if err != nil {
			logr.WithError(err).Error("Error naming batch export")
			s.writeError(w, r, http.StatusInternalServerError, "Error naming export")
			return
		}
		s.writeDownload(w, r, download)
		return
	}
	s.writeJSON(w, r, http.StatusOK, batchResponse{Mode: mode, Format: format, Items: items, Summary: summary})
}

func (s *Server) handleFileEncode(w http.ResponseWriter, r *http.Request) {
	logr := requestLogger(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()
	if header.Size > s.cfg.MaxUploadBytes {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		logr.WithError(err).Error("Error reading upload")
		s.writeJSON(w, r, http.StatusInternalServerError, encoding.FileResult{
			Result:   encoding.ResultFromError(fmt.Errorf("Failed to read file: %w", err)),
			FileName: header.Filename,
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == export.ContentTypeBinary {
		contentType = ""
	}
	res := encoding.EncodeFileToBase64(header.Filename, contentType, data)
	logr.WithFields(logrus.Fields{
		"file_name": res.FileName,
		"file_type": res.FileType,
		"size":      encoding.FormatFileSize(int64(len(data))),
	}).Info("File encoded")
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleFileDecode(w http.ResponseWriter, r *http.Request) {
	logr := requestLogger(r)
	var req fileDecodeRequest
	if !s.readJSONLimit(w, r, &req, s.cfg.MaxUploadBytes*2) {
		return
	}
	input, err := encoding.InputFromValue(req.Input)
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, encoding.ResultFromError(err))
		return
	}
	name := req.FileName
	if name == "" {
		name = s.cfg.Export.FileName
	}
	res := encoding.DecodeBase64ToFile(input, name)
	if !res.Success {
		s.writeJSON(w, r, http.StatusUnprocessableEntity, res)
		return
	}
	logr.WithFields(logrus.Fields{
		"file_name": res.FileName,
		"file_type": res.FileType,
		"size":      encoding.FormatFileSize(int64(len(res.Content))),
	}).Info("File decoded")
	s.writeDownload(w, r, export.File(res))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !s.readJSONLimit(w, r, &req, s.cfg.MaxUploadBytes*2) {
		return
	}
	mode, err := encoding.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	format, err := encoding.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	download, err := s.namer.Text(mode, format, req.Output)
	if err != nil {
		requestLogger(r).WithError(err).Error("Error naming download")
		s.writeError(w, r, http.StatusInternalServerError, "Error naming download")
		return
	}
	s.writeDownload(w, r, download)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return s.readJSONLimit(w, r, v, maxJSONBody)
}

// readJSONLimit decodes a JSON body sent with any supported Content-Encoding.
// limit applies to both the wire body and the decoded body.
func (s *Server) readJSONLimit(w http.ResponseWriter, r *http.Request, v any, limit int64) bool {
	limit = max(limit, maxJSONBody)
	contentEncoding := r.Header.Get("Content-Encoding")
	body, err := compression.NewReader(http.MaxBytesReader(w, r.Body, limit), contentEncoding)
	if errors.Is(err, compression.ErrUnknownEncoding) {
		s.writeError(w, r, http.StatusUnsupportedMediaType, "unsupported content encoding: "+contentEncoding)
		return false
	}
	if err != nil {
		s.writeBodyError(w, r, err)
		return false
	}
	decoded := http.MaxBytesReader(w, body, limit)
	defer decoded.Close()
	if err := json.NewDecoder(decoded).Decode(v); err != nil {
		s.writeBodyError(w, r, err)
		return false
	}
	return true
}

func (s *Server) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	requestLogger(r).WithError(err).Warn("Malformed request body")
	s.writeError(w, r, http.StatusBadRequest, "malformed request body")
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		requestLogger(r).WithError(err).Error("Error encoding response")
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}
	s.write(w, r, status, "application/json", body)
}

func (s *Server) writeDownload(w http.ResponseWriter, r *http.Request, d export.Download) {
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.FileName}))
	s.write(w, r, http.StatusOK, d.ContentType, d.Body)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Add("Vary", "Accept-Encoding")
	encoded, retEncoding, err := compression.EncodeWithAccepted(body, r.Header.Get("Accept-Encoding"))
	if err != nil {
		requestLogger(r).WithError(err).Warn("Error encoding body, sending it plain")
		encoded, retEncoding = body, ""
	}
	if retEncoding != "" {
		w.Header().Set("Content-Encoding", retEncoding)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(encoded)))
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// StartServer serves the API on cfg.ListenAddr until it fails.
func StartServer(cfg *config.Config) error {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           NewHandler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       40 * time.Second,
		WriteTimeout:      40 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	logrus.WithFields(cfg.LogrusFields()).Info("Starting server")
	return srv.ListenAndServe()
}

func newRequestID() string {
	return ulid.Make().String()
}
