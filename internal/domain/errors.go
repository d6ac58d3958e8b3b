package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("não autorizado")
	ErrForbidden       = errors.New("acesso negado")
	ErrConflict        = errors.New("conflito com o estado atual")
	ErrInvalidPassword = errors.New("email ou senha inválidos")

	// Orçamento / cálculo de custos.
	ErrMissingMaterial  = errors.New("selecione um tecido ou um forro")
	ErrNoSewingService  = errors.New("nenhum serviço de costura ativo para o tipo de cortina")
	ErrMaterialInactive = errors.New("material arquivado ou sem preço ativo")
	ErrInvalidMargin    = errors.New("margem deve estar entre 0 e 200")
	ErrInvalidStatus    = errors.New("transição de status inválida")

	// Contas a receber.
	ErrInstallmentAlreadyPaid = errors.New("parcela já está paga")
	ErrReceiptTooLarge        = errors.New("comprovante excede o tamanho máximo")
)
