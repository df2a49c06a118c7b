package session

import "github.com/google/uuid"

// Level classifies a notification for the view layer.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-visible notice emitted by session operations.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
}

// Notifier receives notifications. Implementations render toasts, flash
// messages, or status lines; emission is best-effort and never blocks a
// state transition.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(n Notification)

// Notify satisfies the Notifier interface.
func (f NotifierFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// Messages holds the notification copy the machine emits. Defaults keep the
// original product's pt-BR strings; override via WithMessages when embedding
// the machine elsewhere.
type Messages struct {
	SignInSuccess  string
	SignInError    string
	SignUpSuccess  string
	SignUpDetail   string
	SignUpError    string
	SignOutSuccess string
	SignOutError   string
	SessionExpired string
	ExpiredDetail  string
	AuthError      string
	AuthDetail     string
	Generic        string
}

// DefaultMessages returns the stock notification copy.
func DefaultMessages() Messages {
	return Messages{
		SignInSuccess:  "Login realizado com sucesso!",
		SignInError:    "Erro no Login",
		SignUpSuccess:  "Cadastro realizado com sucesso!",
		SignUpDetail:   "Por favor, faça login para continuar.",
		SignUpError:    "Erro no Cadastro",
		SignOutSuccess: "Logout realizado com sucesso.",
		SignOutError:   "Erro ao sair",
		SessionExpired: "Sessão expirada",
		ExpiredDetail:  "Sua sessão expirou. Por favor, faça login novamente.",
		AuthError:      "Erro de Autenticação",
		AuthDetail:     "Não foi possível validar sua sessão. Por favor, faça login novamente.",
		Generic:        "Ocorreu um erro inesperado.",
	}
}
