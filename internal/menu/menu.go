package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KromaEnergia/farmacia/internal/catalogo"
	"github.com/KromaEnergia/farmacia/internal/erros"
	"github.com/KromaEnergia/farmacia/internal/terminal"
	"github.com/KromaEnergia/farmacia/internal/venda"
)

//go:generate go tool stringer -type=Comando -linecomment -output=comando_string.go

// Comando é uma opção do menu; o valor é o número digitado.
type Comando int

const (
	Sair             Comando = iota // Sair
	CadastrarCliente                // Cadastrar cliente
	ListarClientes                  // Listar clientes
	RemoverCliente                  // Remover cliente
	CadastrarProduto                // Cadastrar produto
	ListarProdutos                  // Listar produtos
	RemoverProduto                  // Remover produto
	CadastrarReceita                // Cadastrar receita
	ListarReceitas                  // Listar receitas
	RemoverReceita                  // Remover receita
	RegistrarVenda                  // Registrar venda
	ListarVendas                    // Listar vendas do cliente
)

const formatoData = "02/01/2006"

// ParseComando converte o número digitado numa opção do menu.
func ParseComando(s string) (Comando, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > int(ListarVendas) {
		return 0, erros.Invalida("opção %q", s)
	}
	return Comando(n), nil
}

type Menu struct {
	Catalogo *catalogo.Service
	Vendas   *venda.Workflow
	Term     terminal.Terminal
}

func New(cat *catalogo.Service, vendas *venda.Workflow, term terminal.Terminal) *Menu {
	return &Menu{Catalogo: cat, Vendas: vendas, Term: term}
}

// Executar mostra o menu até o usuário escolher Sair ou a entrada acabar.
// Erros de uma opção são impressos e o menu volta ao início.
func (m *Menu) Executar(ctx context.Context) error {
	for {
		m.imprimirOpcoes()
		txt, err := m.Term.Prompt("Opção")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, err := ParseComando(txt)
		if err != nil {
			m.Term.Print("Opção inválida: %s", txt)
			continue
		}
		if cmd == Sair {
			return nil
		}

		if err := m.Despachar(ctx, cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !erroDeDominio(err) {
				log.Printf("%s: %v", cmd, err)
			}
			m.Term.Print("Erro: %v", err)
		}
	}
}

func (m *Menu) imprimirOpcoes() {
	m.Term.Print("")
	for c := CadastrarCliente; c <= ListarVendas; c++ {
		m.Term.Print("%2d - %s", int(c), c)
	}
	m.Term.Print("%2d - %s", int(Sair), Sair)
}

// Despachar executa a operação correspondente ao comando.
func (m *Menu) Despachar(ctx context.Context, cmd Comando) error {
	switch cmd {
	case CadastrarCliente:
		return m.cadastrarCliente(ctx)
	case ListarClientes:
		return m.listarClientes(ctx)
	case RemoverCliente:
		return m.removerCliente(ctx)
	case CadastrarProduto:
		return m.cadastrarProduto(ctx)
	case ListarProdutos:
		return m.listarProdutos(ctx)
	case RemoverProduto:
		return m.removerProduto(ctx)
	case CadastrarReceita:
		return m.cadastrarReceita(ctx)
	case ListarReceitas:
		return m.listarReceitas(ctx)
	case RemoverReceita:
		return m.removerReceita(ctx)
	case RegistrarVenda:
		_, err := m.Vendas.Conduzir(ctx, m.Term)
		return err
	case ListarVendas:
		return m.listarVendas(ctx)
	case Sair:
		return nil
	}
	return fmt.Errorf("comando sem operação: %s", cmd)
}

// perguntar faz várias perguntas em sequência e para no primeiro erro.
func (m *Menu) perguntar(labels ...string) ([]string, error) {
	respostas := make([]string, 0, len(labels))
	for _, l := range labels {
		v, err := m.Term.Prompt(l)
		if err != nil {
			return nil, err
		}
		respostas = append(respostas, v)
	}
	return respostas, nil
}

func (m *Menu) cadastrarCliente(ctx context.Context) error {
	r, err := m.perguntar("CPF", "Nome", "Telefone", "Logradouro", "Bairro", "CEP")
	if err != nil {
		return err
	}
	novo := catalogo.NovoCliente{CPF: r[0], Nome: r[1], Telefone: r[2]}
	if r[3] != "" || r[4] != "" || r[5] != "" {
		novo.Endereco = &catalogo.NovoEndereco{Logradouro: r[3], Bairro: r[4], CEP: r[5]}
	}

	c, err := m.Catalogo.AdicionarCliente(ctx, novo)
	if err != nil {
		return err
	}
	m.Term.Print("Cliente %s cadastrado.", c.CPF)
	return nil
}

func (m *Menu) listarClientes(ctx context.Context) error {
	n := 0
	for c, err := range m.Catalogo.ListarClientes(ctx) {
		if err != nil {
			return err
		}
		n++
		linha := fmt.Sprintf("%s | %s | %s", c.CPF, c.Nome, c.Telefone)
		if c.Endereco != nil {
			linha += fmt.Sprintf(" | %s, %s, %s", c.Endereco.Logradouro, c.Endereco.Bairro, c.Endereco.CEP)
		}
		m.Term.Print("%s", linha)
	}
	if n == 0 {
		m.Term.Print("Nenhum cliente cadastrado.")
	}
	return nil
}

func (m *Menu) removerCliente(ctx context.Context) error {
	cpf, err := m.Term.Prompt("CPF")
	if err != nil {
		return err
	}
	if err := m.Catalogo.RemoverCliente(ctx, cpf); err != nil {
		return err
	}
	m.Term.Print("Cliente %s removido.", cpf)
	return nil
}

func (m *Menu) cadastrarProduto(ctx context.Context) error {
	r, err := m.perguntar("Nome", "Preço", "Quantidade em estoque", "Precisa de receita (s/n)")
	if err != nil {
		return err
	}
	preco, err := decimal.NewFromString(strings.Replace(r[1], ",", ".", 1))
	if err != nil {
		return erros.Invalida("preço %q", r[1])
	}
	qtd, err := strconv.Atoi(r[2])
	if err != nil {
		return erros.Invalida("quantidade %q", r[2])
	}

	p, err := m.Catalogo.AdicionarProduto(ctx, catalogo.NovoProduto{
		Nome:           r[0],
		Preco:          preco,
		QtdEstoque:     qtd,
		PrecisaReceita: simOuNao(r[3]),
	})
	if err != nil {
		return err
	}
	m.Term.Print("Produto %d cadastrado.", p.ID)
	return nil
}

func (m *Menu) listarProdutos(ctx context.Context) error {
	n := 0
	for p, err := range m.Catalogo.ListarProdutos(ctx) {
		if err != nil {
			return err
		}
		n++
		receita := "não"
		if p.PrecisaReceita {
			receita = "sim"
		}
		m.Term.Print("[%d] %s | R$ %s | estoque %d | receita: %s", p.ID, p.Nome, p.Preco.StringFixed(2), p.QtdEstoque, receita)
	}
	if n == 0 {
		m.Term.Print("Nenhum produto cadastrado.")
	}
	return nil
}

func (m *Menu) removerProduto(ctx context.Context) error {
	txt, err := m.Term.Prompt("ID do produto")
	if err != nil {
		return err
	}
	id, err := venda.ParseID(txt)
	if err != nil {
		return err
	}
	if err := m.Catalogo.RemoverProduto(ctx, id); err != nil {
		return err
	}
	m.Term.Print("Produto %d removido.", id)
	return nil
}

func (m *Menu) cadastrarReceita(ctx context.Context) error {
	r, err := m.perguntar("Nome do médico", "CRM", "Data de emissão (dd/mm/aaaa)", "Validade (dd/mm/aaaa)")
	if err != nil {
		return err
	}
	emissao, err := time.Parse(formatoData, r[2])
	if err != nil {
		return erros.Invalida("data de emissão %q", r[2])
	}
	validade, err := time.Parse(formatoData, r[3])
	if err != nil {
		return erros.Invalida("validade %q", r[3])
	}

	rec, err := m.Catalogo.AdicionarReceita(ctx, catalogo.NovaReceita{
		NomeMedico:  r[0],
		CRMMedico:   r[1],
		DataEmissao: emissao,
		Validade:    validade,
	})
	if err != nil {
		return err
	}
	m.Term.Print("Receita %d cadastrada.", rec.ID)
	return nil
}

func (m *Menu) listarReceitas(ctx context.Context) error {
	n := 0
	for r, err := range m.Catalogo.ListarReceitas(ctx) {
		if err != nil {
			return err
		}
		n++
		m.Term.Print("[%d] %s (%s) | emitida %s | validade %s",
			r.ID, r.NomeMedico, r.CRMMedico, r.DataEmissao.Format(formatoData), r.Validade.Format(formatoData))
	}
	if n == 0 {
		m.Term.Print("Nenhuma receita cadastrada.")
	}
	return nil
}

func (m *Menu) removerReceita(ctx context.Context) error {
	txt, err := m.Term.Prompt("ID da receita")
	if err != nil {
		return err
	}
	id, err := venda.ParseID(txt)
	if err != nil {
		return err
	}
	if err := m.Catalogo.RemoverReceita(ctx, id); err != nil {
		return err
	}
	m.Term.Print("Receita %d removida.", id)
	return nil
}

func (m *Menu) listarVendas(ctx context.Context) error {
	cpf, err := m.Term.Prompt("CPF do cliente")
	if err != nil {
		return err
	}
	vendas, err := m.Vendas.ListarVendas(ctx, cpf)
	if err != nil {
		return err
	}
	if len(vendas) == 0 {
		m.Term.Print("Nenhuma venda para %s.", cpf)
		return nil
	}
	for _, v := range vendas {
		m.Term.Print("Venda %d em %s: R$ %s", v.ID, v.DataVenda.Format(formatoData), v.Valor.StringFixed(2))
		for _, it := range v.Itens {
			m.Term.Print("  produto %d: %d x R$ %s", it.ProdutoID, it.Quantidade, it.PrecoUnitario.StringFixed(2))
		}
	}
	return nil
}

func simOuNao(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func erroDeDominio(err error) bool {
	for _, alvo := range []error{
		erros.ErrNaoEncontrado,
		erros.ErrChaveDuplicada,
		erros.ErrEntradaInvalida,
		erros.ErrEstoqueInsuficiente,
		erros.ErrConflito,
		erros.ErrVendaVazia,
	} {
		if errors.Is(err, alvo) {
			return true
		}
	}
	return false
}
