package venda

import (
	"context"
	"errors"
	"strconv"

	"github.com/KromaEnergia/farmacia/internal/erros"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/terminal"
	"github.com/KromaEnergia/farmacia/internal/utils"
)

// Conduzir executa a venda pelo terminal: pede o CPF e a receita, depois
// produto e quantidade até receber um produto vazio, e grava a venda.
// Itens recusados são informados e o laço continua; cliente inexistente ou
// erro de leitura encerram a venda sem gravar nada.
func (w *Workflow) Conduzir(ctx context.Context, term terminal.Terminal) (*Venda, error) {
	cpf, err := term.Prompt("CPF do cliente")
	if err != nil {
		return nil, err
	}
	txtReceita, err := term.Prompt("ID da receita (vazio se não houver)")
	if err != nil {
		return nil, err
	}
	var receitaID *uint
	if txtReceita != "" {
		id, err := ParseID(txtReceita)
		if err != nil {
			return nil, err
		}
		receitaID = &id
	}

	s, err := w.Iniciar(ctx, cpf, receitaID)
	if err != nil {
		return nil, err
	}
	term.Print("Cliente: %s", s.Cliente.Nome)
	return s.Coletar(ctx, term)
}

// Coletar mostra os produtos, lê produto e quantidade até receber um produto
// vazio e finaliza a venda. Qualquer saída sem venda gravada deixa a sessão
// cancelada.
func (s *Sessao) Coletar(ctx context.Context, term terminal.Terminal) (v *Venda, err error) {
	defer func() {
		if err != nil {
			s.Cancelar()
		}
	}()

	if err := s.w.mostrarProdutos(ctx, term); err != nil {
		return nil, err
	}

	for {
		txtProduto, err := term.Prompt("ID do produto (vazio para finalizar)")
		if err != nil {
			return nil, err
		}
		if txtProduto == "" {
			break
		}
		id, err := ParseID(txtProduto)
		if err != nil {
			term.Print("Item recusado: %v", err)
			continue
		}

		txtQtd, err := term.Prompt("Quantidade")
		if err != nil {
			return nil, err
		}
		qtd, err := strconv.Atoi(txtQtd)
		if err != nil {
			term.Print("Item recusado: %v", erros.Invalida("quantidade %q", txtQtd))
			continue
		}

		item, err := s.Adicionar(ctx, id, qtd)
		if err != nil {
			if !itemRecusado(err) {
				return nil, err
			}
			term.Print("Item recusado: %v", err)
			continue
		}
		term.Print("%d x %s = R$ %s (total parcial R$ %s)",
			item.Quantidade, item.Produto.Nome, item.Subtotal().StringFixed(2), s.Total().StringFixed(2))
	}

	v, err = s.Finalizar(ctx)
	if err != nil {
		return nil, err
	}
	term.Print("Venda %d registrada com %d item(ns). Total: R$ %s", v.ID, len(v.Itens), v.Valor.StringFixed(2))
	return v, nil
}

func (w *Workflow) mostrarProdutos(ctx context.Context, term terminal.Terminal) error {
	db := w.DB.WithContext(ctx)
	seq := utils.Paginar(utils.TamanhoPagina, func(offset, limite int) ([]produto.Produto, error) {
		return w.Produtos.ListarPagina(db, offset, limite)
	})
	term.Print("Produtos:")
	for p, err := range seq {
		if err != nil {
			return err
		}
		term.Print("  [%d] %s R$ %s (estoque %d)%s", p.ID, p.Nome, p.Preco.StringFixed(2), p.QtdEstoque, marcaReceita(p))
	}
	return nil
}

func marcaReceita(p produto.Produto) string {
	if p.PrecisaReceita {
		return " *receita"
	}
	return ""
}

// itemRecusado diz se o erro recusa só o item, sem encerrar a venda.
func itemRecusado(err error) bool {
	return errors.Is(err, erros.ErrNaoEncontrado) ||
		errors.Is(err, erros.ErrEstoqueInsuficiente) ||
		errors.Is(err, erros.ErrEntradaInvalida)
}

// ParseID converte um identificador digitado; zero e negativos são inválidos.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, erros.Invalida("identificador %q", s)
	}
	return uint(id), nil
}

