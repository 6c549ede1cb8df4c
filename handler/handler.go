package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tieubaoca/chatpdf/service"
	"github.com/tieubaoca/chatpdf/types"
)

// Messages shown to the user.
const (
	MsgProcessing   = "Processando..."
	MsgDone         = "Concluído"
	MsgUploadFirst  = "Por favor, carregue e processe um arquivo PDF primeiro para habilitar as perguntas"
	MsgNoFiles      = "Nenhum arquivo PDF enviado"
	msgIndexError   = "Erro ao criar vetor: %v"
	msgExtractError = "Erro ao ler o PDF: %v"
	msgAskError     = "Erro ao processar a pergunta: %v"
)

// SessionService is the part of service.Session the handlers use.
type SessionService interface {
	State() service.SessionState
	QuestionEnabled() bool
	Process(ctx context.Context, files []types.PDFFile) (types.ProcessResponse, error)
	Ask(ctx context.Context, question string) (types.AskResponse, error)
}

func ProcessErrorMessage(err error) string {
	if errors.Is(err, service.ErrExtraction) {
		return fmt.Sprintf(msgExtractError, err)
	}
	return fmt.Sprintf(msgIndexError, err)
}

func AskErrorMessage(err error) string {
	if errors.Is(err, service.ErrNotReady) {
		return MsgUploadFirst
	}
	return fmt.Sprintf(msgAskError, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoIndex):
		return http.StatusNotFound
	case errors.Is(err, service.ErrExtraction), errors.Is(err, service.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrIndexBuild), errors.Is(err, service.ErrRetrieval), errors.Is(err, service.ErrAnswer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
