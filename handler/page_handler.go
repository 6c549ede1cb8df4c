package handler

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/chatpdf/service"
	"github.com/tieubaoca/chatpdf/types"
)

//go:embed templates/index.html
var indexHTML string

var PageTemplate = template.Must(template.New("index.html").Parse(indexHTML))

type Banner struct {
	Kind    string // success, info or error
	Message string
}

type PageData struct {
	Ready       bool
	Banner      *Banner
	Question    string
	Reply       string
	Processing  string
	UploadFirst string
}

// PageHandler serves the single-page form.
type PageHandler struct {
	session SessionService
}

func NewPageHandler(session SessionService) *PageHandler {
	return &PageHandler{session: session}
}

func (h *PageHandler) render(c *gin.Context, data PageData) {
	data.Ready = h.session.QuestionEnabled()
	data.Processing = MsgProcessing
	data.UploadFirst = MsgUploadFirst
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, PageData{})
}

func (h *PageHandler) Process(c *gin.Context) {
	files, err := uploadedPDFs(c)
	if err != nil {
		h.render(c, PageData{Banner: &Banner{Kind: "error", Message: ProcessErrorMessage(err)}})
		return
	}
	// The button does nothing without files.
	if len(files) == 0 {
		h.render(c, PageData{})
		return
	}

	if _, err := h.session.Process(c.Request.Context(), files); err != nil {
		h.render(c, PageData{Banner: &Banner{Kind: "error", Message: ProcessErrorMessage(err)}})
		return
	}
	h.render(c, PageData{Banner: &Banner{Kind: "success", Message: MsgDone}})
}

func (h *PageHandler) Ask(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, PageData{Banner: &Banner{Kind: "error", Message: AskErrorMessage(err)}})
		return
	}

	res, err := h.session.Ask(c.Request.Context(), req.Question)
	if err != nil {
		kind := "error"
		if errors.Is(err, service.ErrNotReady) {
			kind = "info"
		}
		h.render(c, PageData{Question: req.Question, Banner: &Banner{Kind: kind, Message: AskErrorMessage(err)}})
		return
	}
	h.render(c, PageData{Question: res.Question, Reply: res.Reply})
}

// uploadedPDFs returns the files of the pdf_docs field. A request that is not multipart
// carries no files.
func uploadedPDFs(c *gin.Context) ([]types.PDFFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", service.ErrExtraction, err)
	}
	files, err := service.ReadUploadedPDFs(form.File["pdf_docs"])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrExtraction, err)
	}
	return files, nil
}
