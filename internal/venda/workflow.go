package venda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KromaEnergia/farmacia/internal/cliente"
	"github.com/KromaEnergia/farmacia/internal/erros"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/receita"
)

var ErrSessaoEncerrada = errors.New("sessão de venda encerrada")

// Workflow monta uma venda a partir de itens escolhidos um a um e grava tudo
// (baixa de estoque, venda e itens) numa única transação.
type Workflow struct {
	DB       *gorm.DB
	Repo     Repository
	Clientes cliente.Repository
	Produtos produto.Repository
	Receitas receita.Repository
	Agora    func() time.Time
}

func NewWorkflow(db *gorm.DB) *Workflow {
	return &Workflow{
		DB:       db,
		Repo:     NewRepository(),
		Clientes: cliente.NewRepository(),
		Produtos: produto.NewRepository(),
		Receitas: receita.NewRepository(),
		Agora:    time.Now,
	}
}

// Estado da venda em construção
type Estado int

const (
	Coletando Estado = iota
	Finalizada
	Cancelada
)

// ItemPendente é um item aceito na sessão e ainda não gravado.
type ItemPendente struct {
	Produto       produto.Produto
	Quantidade    int
	PrecoUnitario decimal.Decimal
}

func (i ItemPendente) Subtotal() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// Sessao é uma venda em construção. Nada é gravado até Finalizar; o estoque
// aceito fica reservado só na memória da sessão.
type Sessao struct {
	w         *Workflow
	Cliente   cliente.Cliente
	Receita   *receita.Receita
	estado    Estado
	itens     []ItemPendente
	reservado map[uint]int
	total     decimal.Decimal
}

// Iniciar resolve o cliente e a receita opcional. Qualquer falha aqui aborta a venda.
func (w *Workflow) Iniciar(ctx context.Context, cpf string, receitaID *uint) (*Sessao, error) {
	db := w.DB.WithContext(ctx)

	c, err := w.Clientes.BuscarPorCPF(db, cpf)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", cpf, erros.Traduzir(err))
	}

	s := &Sessao{
		w:         w,
		Cliente:   *c,
		reservado: make(map[uint]int),
		total:     decimal.Zero,
	}

	if receitaID != nil {
		rec, err := w.Receitas.BuscarPorID(db, *receitaID)
		if err != nil {
			return nil, fmt.Errorf("receita %d: %w", *receitaID, erros.Traduzir(err))
		}
		if rec.VencidaEm(w.Agora()) {
			return nil, fmt.Errorf("receita %d (validade %s): %w", rec.ID, rec.Validade.Format("02/01/2006"), erros.ErrReceitaVencida)
		}
		s.Receita = rec
	}
	return s, nil
}

func (s *Sessao) Estado() Estado { return s.estado }

func (s *Sessao) Total() decimal.Decimal { return s.total }

func (s *Sessao) Itens() []ItemPendente {
	return append([]ItemPendente(nil), s.itens...)
}

// Disponivel é o estoque gravado menos o que a sessão já reservou do produto.
func (s *Sessao) Disponivel(p produto.Produto) int {
	return p.QtdEstoque - s.reservado[p.ID]
}

// Adicionar tenta aceitar qtd unidades do produto. Um erro recusa só este item:
// a sessão continua aberta e nem o estoque nem o total mudam.
func (s *Sessao) Adicionar(ctx context.Context, produtoID uint, qtd int) (*ItemPendente, error) {
	if s.estado != Coletando {
		return nil, ErrSessaoEncerrada
	}
	if qtd <= 0 {
		return nil, erros.Invalida("quantidade deve ser maior que zero, recebido %d", qtd)
	}

	p, err := s.w.Produtos.BuscarPorID(s.w.DB.WithContext(ctx), produtoID)
	if err != nil {
		return nil, fmt.Errorf("produto %d: %w", produtoID, erros.Traduzir(err))
	}
	if p.PrecisaReceita && s.Receita == nil {
		return nil, fmt.Errorf("%s: %w", p.Nome, erros.ErrReceitaObrigatoria)
	}
	if disponivel := s.Disponivel(*p); disponivel < qtd {
		return nil, fmt.Errorf("%s: pedido %d, disponível %d: %w", p.Nome, qtd, disponivel, erros.ErrEstoqueInsuficiente)
	}

	item := ItemPendente{Produto: *p, Quantidade: qtd, PrecoUnitario: p.Preco}
	s.reservado[p.ID] += qtd
	s.total = s.total.Add(item.Subtotal())
	s.itens = append(s.itens, item)
	return &item, nil
}

// Cancelar descarta a sessão sem gravar nada.
func (s *Sessao) Cancelar() {
	if s.estado == Coletando {
		s.estado = Cancelada
	}
}

// Finalizar grava, numa única transação, a baixa de estoque de cada item, a
// venda com o total acumulado e os itens. Sem itens aceitos nada é gravado.
func (s *Sessao) Finalizar(ctx context.Context) (*Venda, error) {
	if s.estado != Coletando {
		return nil, ErrSessaoEncerrada
	}
	if len(s.itens) == 0 {
		s.estado = Cancelada
		return nil, erros.ErrVendaVazia
	}

	v := &Venda{
		DataVenda:  s.w.Agora(),
		Valor:      s.total.Round(2),
		CPFCliente: s.Cliente.CPF,
		Itens:      make([]ItemVenda, 0, len(s.itens)),
	}
	if s.Receita != nil {
		v.ReceitaID = &s.Receita.ID
	}
	for _, it := range s.itens {
		v.Itens = append(v.Itens, ItemVenda{
			ProdutoID:     it.Produto.ID,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
		})
	}

	err := s.w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range s.itens {
			ok, err := s.w.Produtos.BaixarEstoque(tx, it.Produto.ID, it.Quantidade)
			if err != nil {
				return fmt.Errorf("baixar estoque de %s: %w", it.Produto.Nome, err)
			}
			if !ok {
				return fmt.Errorf("%s: %w", it.Produto.Nome, erros.ErrEstoqueInsuficiente)
			}
		}
		if err := s.w.Repo.Criar(tx, v); err != nil {
			return fmt.Errorf("gravar venda: %w", erros.Traduzir(err))
		}
		return nil
	})
	if err != nil {
		s.estado = Cancelada
		return nil, err
	}

	s.estado = Finalizada
	return v, nil
}

// ListarVendas devolve as vendas do cliente com seus itens.
func (w *Workflow) ListarVendas(ctx context.Context, cpf string) ([]Venda, error) {
	db := w.DB.WithContext(ctx)
	existe, err := w.Clientes.Existe(db, cpf)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, fmt.Errorf("cliente %s: %w", cpf, erros.ErrNaoEncontrado)
	}
	return w.Repo.ListarPorCliente(db, cpf)
}
