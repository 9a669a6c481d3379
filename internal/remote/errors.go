package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable indica que a troca com a API não se completou
// (timeout, conexão recusada). Os stores usam errors.Is para
// distinguir "fora do ar" de "rejeitado pelo servidor".
var ErrUnavailable = errors.New("api unreachable")

// APIError é a resposta não-2xx normalizada: mensagem legível e,
// quando o corpo trouxer, um código de erro estruturado.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func decodeAPIError(resp *http.Response) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		msg = body.Error
		if msg == "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Code: body.Code, Message: msg}
}

// UserMessage extrai de um erro do cliente a mensagem exibível ao
// usuário: a mensagem do servidor verbatim para erros de aplicação,
// um aviso de conexão para falha de rede.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "sem conexão com o servidor"
	}
	return "erro inesperado, tente novamente"
}
