// Package erros define os tipos de erro compartilhados pelo catálogo e pela venda.
package erros

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNaoEncontrado       = errors.New("registro não encontrado")
	ErrChaveDuplicada      = errors.New("chave duplicada")
	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
	ErrConflito            = errors.New("registro referenciado por outro")

	// Específicos da venda
	ErrReceitaObrigatoria = fmt.Errorf("%w: produto exige receita", ErrEntradaInvalida)
	ErrReceitaVencida     = fmt.Errorf("%w: receita vencida", ErrEntradaInvalida)
	ErrVendaVazia         = errors.New("venda sem itens")
)

// Traduzir converte os erros do gorm nos tipos acima, preservando a mensagem original.
func Traduzir(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNaoEncontrado, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrChaveDuplicada, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConflito, err)
	}
	return err
}

// Invalida monta um ErrEntradaInvalida com detalhe.
func Invalida(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEntradaInvalida, fmt.Sprintf(format, args...))
}
