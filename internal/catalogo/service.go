// Package catalogo cadastra, lista e remove clientes, produtos e receitas.
package catalogo

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KromaEnergia/farmacia/internal/cliente"
	"github.com/KromaEnergia/farmacia/internal/erros"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/receita"
	"github.com/KromaEnergia/farmacia/internal/utils"
	"github.com/KromaEnergia/farmacia/internal/venda"
)

type NovoEndereco struct {
	Logradouro string `validate:"max=100"`
	Bairro     string `validate:"max=100"`
	CEP        string `validate:"max=15"`
}

type NovoCliente struct {
	CPF      string `validate:"required,max=14"`
	Nome     string `validate:"required,max=100"`
	Telefone string `validate:"max=20"`
	Endereco *NovoEndereco
}

type NovoProduto struct {
	Nome           string          `validate:"required,max=100"`
	Preco          decimal.Decimal `validate:"gte=0"`
	QtdEstoque     int             `validate:"gte=0"`
	PrecisaReceita bool
}

type NovaReceita struct {
	NomeMedico  string    `validate:"required,max=100"`
	CRMMedico   string    `validate:"required,max=20"`
	DataEmissao time.Time `validate:"required"`
	Validade    time.Time `validate:"required,gtefield=DataEmissao"`
}

// Service encapsula o banco e os repositórios do catálogo
type Service struct {
	DB       *gorm.DB
	Clientes cliente.Repository
	Produtos produto.Repository
	Receitas receita.Repository
	Vendas   venda.Repository
	validate *validator.Validate
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Clientes: cliente.NewRepository(),
		Produtos: produto.NewRepository(),
		Receitas: receita.NewRepository(),
		Vendas:   venda.NewRepository(),
		validate: novoValidador(),
	}
}

func novoValidador() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (s *Service) validar(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", erros.ErrEntradaInvalida, err)
	}
	return nil
}

// AdicionarCliente grava o endereço e o cliente na mesma transação.
func (s *Service) AdicionarCliente(ctx context.Context, novo NovoCliente) (*cliente.Cliente, error) {
	novo.CPF = strings.TrimSpace(novo.CPF)
	novo.Nome = strings.TrimSpace(novo.Nome)
	if err := s.validar(novo); err != nil {
		return nil, err
	}

	c := &cliente.Cliente{CPF: novo.CPF, Nome: novo.Nome, Telefone: novo.Telefone}
	if novo.Endereco != nil {
		c.Endereco = &cliente.Endereco{
			Logradouro: novo.Endereco.Logradouro,
			Bairro:     novo.Endereco.Bairro,
			CEP:        novo.Endereco.CEP,
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existe, err := s.Clientes.Existe(tx, c.CPF)
		if err != nil {
			return err
		}
		if existe {
			return fmt.Errorf("cpf %s: %w", c.CPF, erros.ErrChaveDuplicada)
		}
		return erros.Traduzir(s.Clientes.Criar(tx, c))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListarClientes percorre os clientes em ordem de cadastro, com o endereço.
func (s *Service) ListarClientes(ctx context.Context) iter.Seq2[cliente.Cliente, error] {
	db := s.DB.WithContext(ctx)
	return utils.Paginar(utils.TamanhoPagina, func(offset, limite int) ([]cliente.Cliente, error) {
		return s.Clientes.ListarPagina(db, offset, limite)
	})
}

// RemoverCliente apaga o cliente e o endereço. Clientes com vendas não são removidos.
func (s *Service) RemoverCliente(ctx context.Context, cpf string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.Clientes.BuscarPorCPF(tx, cpf)
		if err != nil {
			return fmt.Errorf("cliente %s: %w", cpf, erros.Traduzir(err))
		}
		n, err := s.Vendas.ContarPorCliente(tx, cpf)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("cliente %s possui %d venda(s): %w", cpf, n, erros.ErrConflito)
		}
		return erros.Traduzir(s.Clientes.Deletar(tx, c))
	})
}

func (s *Service) AdicionarProduto(ctx context.Context, novo NovoProduto) (*produto.Produto, error) {
	novo.Nome = strings.TrimSpace(novo.Nome)
	if err := s.validar(novo); err != nil {
		return nil, err
	}

	p := &produto.Produto{
		Nome:           novo.Nome,
		Preco:          novo.Preco.Round(2),
		QtdEstoque:     novo.QtdEstoque,
		PrecisaReceita: novo.PrecisaReceita,
	}
	if err := s.Produtos.Criar(s.DB.WithContext(ctx), p); err != nil {
		return nil, erros.Traduzir(err)
	}
	return p, nil
}

func (s *Service) ListarProdutos(ctx context.Context) iter.Seq2[produto.Produto, error] {
	db := s.DB.WithContext(ctx)
	return utils.Paginar(utils.TamanhoPagina, func(offset, limite int) ([]produto.Produto, error) {
		return s.Produtos.ListarPagina(db, offset, limite)
	})
}

// RemoverProduto recusa produtos que já aparecem em alguma venda.
func (s *Service) RemoverProduto(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Produtos.BuscarPorID(tx, id); err != nil {
			return fmt.Errorf("produto %d: %w", id, erros.Traduzir(err))
		}
		n, err := s.Vendas.ContarItensPorProduto(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("produto %d aparece em %d item(ns) de venda: %w", id, n, erros.ErrConflito)
		}
		return erros.Traduzir(s.Produtos.Deletar(tx, id))
	})
}

func (s *Service) AdicionarReceita(ctx context.Context, nova NovaReceita) (*receita.Receita, error) {
	nova.NomeMedico = strings.TrimSpace(nova.NomeMedico)
	nova.CRMMedico = strings.TrimSpace(nova.CRMMedico)
	if err := s.validar(nova); err != nil {
		return nil, err
	}

	r := &receita.Receita{
		NomeMedico:  nova.NomeMedico,
		CRMMedico:   nova.CRMMedico,
		DataEmissao: nova.DataEmissao,
		Validade:    nova.Validade,
	}
	if err := s.Receitas.Criar(s.DB.WithContext(ctx), r); err != nil {
		return nil, erros.Traduzir(err)
	}
	return r, nil
}

func (s *Service) ListarReceitas(ctx context.Context) iter.Seq2[receita.Receita, error] {
	db := s.DB.WithContext(ctx)
	return utils.Paginar(utils.TamanhoPagina, func(offset, limite int) ([]receita.Receita, error) {
		return s.Receitas.ListarPagina(db, offset, limite)
	})
}

// RemoverReceita recusa receitas anexadas a alguma venda.
func (s *Service) RemoverReceita(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Receitas.BuscarPorID(tx, id); err != nil {
			return fmt.Errorf("receita %d: %w", id, erros.Traduzir(err))
		}
		n, err := s.Vendas.ContarPorReceita(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("receita %d anexada a %d venda(s): %w", id, n, erros.ErrConflito)
		}
		return erros.Traduzir(s.Receitas.Deletar(tx, id))
	})
}
