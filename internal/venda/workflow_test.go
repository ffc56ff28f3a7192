package venda_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KromaEnergia/farmacia/internal/erros"
	"github.com/KromaEnergia/farmacia/internal/receita"
	"github.com/KromaEnergia/farmacia/internal/testhelpers"
	"github.com/KromaEnergia/farmacia/internal/venda"
)

const cpfMaria = "123.456.789-00"

var hoje = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*gorm.DB, *venda.Workflow) {
	t.Helper()
	database := testhelpers.SetupTestDB(t)
	testhelpers.CriarCliente(t, database, cpfMaria, "Maria Silva")
	w := venda.NewWorkflow(database)
	w.Agora = func() time.Time { return hoje }
	return database, w
}

func criarReceita(t *testing.T, database *gorm.DB, validade time.Time) *receita.Receita {
	t.Helper()
	rec := &receita.Receita{
		NomeMedico:  "Dr. João Souza",
		CRMMedico:   "CRM-SP 123456",
		DataEmissao: validade.AddDate(0, -1, 0),
		Validade:    validade,
	}
	require.NoError(t, database.Create(rec).Error)
	return rec
}

func TestVendaBaixaEstoqueERecusaQuandoFalta(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Dipirona 500mg", "10.00", 5, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	item, err := s.Adicionar(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "30.00", item.Subtotal().StringFixed(2))

	v, err := s.Finalizar(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30.00", v.Valor.StringFixed(2))
	assert.Equal(t, 2, testhelpers.Estoque(t, database, p.ID))
	assert.Equal(t, venda.Finalizada, s.Estado())

	s, err = w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, p.ID, 3)
	assert.ErrorIs(t, err, erros.ErrEstoqueInsuficiente)
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 2, testhelpers.Estoque(t, database, p.ID))
}

func TestVendaComDoisItens(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	a := testhelpers.CriarProduto(t, database, "Soro fisiológico", "5.00", 10, false)
	b := testhelpers.CriarProduto(t, database, "Protetor solar", "20.00", 3, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, a.ID, 2)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, b.ID, 1)
	require.NoError(t, err)

	v, err := s.Finalizar(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30.00", v.Valor.StringFixed(2))
	assert.Equal(t, hoje, v.DataVenda)
	assert.Equal(t, cpfMaria, v.CPFCliente)
	assert.Nil(t, v.ReceitaID)

	assert.Equal(t, int64(1), testhelpers.Contar(t, database, &venda.Venda{}))
	assert.Equal(t, int64(2), testhelpers.Contar(t, database, &venda.ItemVenda{}))
	assert.Equal(t, 8, testhelpers.Estoque(t, database, a.ID))
	assert.Equal(t, 2, testhelpers.Estoque(t, database, b.ID))

	gravada, err := venda.NewRepository().BuscarPorID(database, v.ID)
	require.NoError(t, err)
	require.Len(t, gravada.Itens, 2)
	soma := decimal.Zero
	for _, it := range gravada.Itens {
		assert.Equal(t, v.ID, it.VendaID)
		soma = soma.Add(it.Subtotal())
	}
	assert.True(t, soma.Equal(gravada.Valor), "valor %s, soma dos itens %s", gravada.Valor, soma)
}

func TestReservaDentroDaSessao(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Dipirona 500mg", "10.00", 5, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, p.ID, 3)
	require.NoError(t, err)

	_, err = s.Adicionar(ctx, p.ID, 3)
	assert.ErrorIs(t, err, erros.ErrEstoqueInsuficiente)
	assert.Equal(t, "30.00", s.Total().StringFixed(2))
	assert.Len(t, s.Itens(), 1)

	_, err = s.Adicionar(ctx, p.ID, 2)
	require.NoError(t, err)

	v, err := s.Finalizar(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50.00", v.Valor.StringFixed(2))
	assert.Equal(t, 0, testhelpers.Estoque(t, database, p.ID))
}

func TestItensRecusadosNaoMudamNada(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Dipirona 500mg", "10.00", 5, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)

	_, err = s.Adicionar(ctx, 999, 1)
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)

	_, err = s.Adicionar(ctx, p.ID, 0)
	assert.ErrorIs(t, err, erros.ErrEntradaInvalida)

	_, err = s.Adicionar(ctx, p.ID, -2)
	assert.ErrorIs(t, err, erros.ErrEntradaInvalida)

	assert.True(t, s.Total().IsZero())
	assert.Empty(t, s.Itens())
	assert.Equal(t, venda.Coletando, s.Estado())
	assert.Equal(t, 5, testhelpers.Estoque(t, database, p.ID))
}

func TestClienteInexistenteAbortaVenda(t *testing.T) {
	database, w := setup(t)

	_, err := w.Iniciar(context.Background(), "000.000.000-00", nil)
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
	assert.Zero(t, testhelpers.Contar(t, database, &venda.Venda{}))
}

func TestFinalizarSemItensNaoGrava(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)

	_, err = s.Finalizar(ctx)
	assert.ErrorIs(t, err, erros.ErrVendaVazia)
	assert.Equal(t, venda.Cancelada, s.Estado())
	assert.Zero(t, testhelpers.Contar(t, database, &venda.Venda{}))
	assert.Zero(t, testhelpers.Contar(t, database, &venda.ItemVenda{}))
}

func TestCancelarDepoisDeAceitarItens(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Dipirona 500mg", "10.00", 5, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, p.ID, 4)
	require.NoError(t, err)

	s.Cancelar()
	assert.Equal(t, venda.Cancelada, s.Estado())

	_, err = s.Adicionar(ctx, p.ID, 1)
	assert.ErrorIs(t, err, venda.ErrSessaoEncerrada)
	_, err = s.Finalizar(ctx)
	assert.ErrorIs(t, err, venda.ErrSessaoEncerrada)

	assert.Equal(t, 5, testhelpers.Estoque(t, database, p.ID))
	assert.Zero(t, testhelpers.Contar(t, database, &venda.Venda{}))
}

func TestFinalizarEhAtomico(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	a := testhelpers.CriarProduto(t, database, "Soro fisiológico", "5.00", 10, false)
	b := testhelpers.CriarProduto(t, database, "Protetor solar", "20.00", 3, false)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, a.ID, 2)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, b.ID, 3)
	require.NoError(t, err)

	// o estoque de b cai por fora da sessão antes da gravação
	require.NoError(t, database.Model(b).UpdateColumn("qtd_estoque", 1).Error)

	_, err = s.Finalizar(ctx)
	assert.ErrorIs(t, err, erros.ErrEstoqueInsuficiente)

	assert.Equal(t, 10, testhelpers.Estoque(t, database, a.ID), "baixa de a deve ser desfeita")
	assert.Equal(t, 1, testhelpers.Estoque(t, database, b.ID))
	assert.Zero(t, testhelpers.Contar(t, database, &venda.Venda{}))
	assert.Zero(t, testhelpers.Contar(t, database, &venda.ItemVenda{}))
}

func TestProdutoControladoExigeReceita(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Amoxicilina 500mg", "32.50", 4, true)

	s, err := w.Iniciar(ctx, cpfMaria, nil)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, p.ID, 1)
	assert.ErrorIs(t, err, erros.ErrReceitaObrigatoria)
	assert.ErrorIs(t, err, erros.ErrEntradaInvalida)

	rec := criarReceita(t, database, hoje.AddDate(0, 0, 10))
	s, err = w.Iniciar(ctx, cpfMaria, &rec.ID)
	require.NoError(t, err)
	_, err = s.Adicionar(ctx, p.ID, 2)
	require.NoError(t, err)

	v, err := s.Finalizar(ctx)
	require.NoError(t, err)
	require.NotNil(t, v.ReceitaID)
	assert.Equal(t, rec.ID, *v.ReceitaID)
	assert.Equal(t, "65.00", v.Valor.StringFixed(2))
	assert.Equal(t, 2, testhelpers.Estoque(t, database, p.ID))
}

func TestReceitaVencidaOuInexistenteAbortaVenda(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()

	vencida := criarReceita(t, database, hoje.AddDate(0, 0, -1))
	_, err := w.Iniciar(ctx, cpfMaria, &vencida.ID)
	assert.ErrorIs(t, err, erros.ErrReceitaVencida)

	inexistente := uint(404)
	_, err = w.Iniciar(ctx, cpfMaria, &inexistente)
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}

func TestTotalEEstoqueBatemComItensAceitos(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()

	estoqueInicial := map[uint]int{}
	preco := map[uint]decimal.Decimal{}
	var ids []uint
	for i, pr := range []string{"1.99", "12.50", "7.00", "0.35"} {
		p := testhelpers.CriarProduto(t, database, "Produto", pr, 3+i*2, false)
		ids = append(ids, p.ID)
		estoqueInicial[p.ID] = p.QtdEstoque
		preco[p.ID] = p.Preco
	}

	rnd := rand.New(rand.NewSource(42))
	for rodada := 0; rodada < 5; rodada++ {
		s, err := w.Iniciar(ctx, cpfMaria, nil)
		require.NoError(t, err)

		esperado := decimal.Zero
		aceito := map[uint]int{}
		for n := 0; n < 8; n++ {
			id := ids[rnd.Intn(len(ids))]
			qtd := rnd.Intn(4) + 1
			antes := s.Total()
			if _, err := s.Adicionar(ctx, id, qtd); err != nil {
				require.ErrorIs(t, err, erros.ErrEstoqueInsuficiente)
				assert.True(t, antes.Equal(s.Total()))
				continue
			}
			aceito[id] += qtd
			esperado = esperado.Add(preco[id].Mul(decimal.NewFromInt(int64(qtd))))
		}

		v, err := s.Finalizar(ctx)
		if len(aceito) == 0 {
			require.ErrorIs(t, err, erros.ErrVendaVazia)
			continue
		}
		require.NoError(t, err)
		assert.True(t, esperado.Equal(v.Valor), "esperado %s, gravado %s", esperado, v.Valor)

		for _, id := range ids {
			estoqueInicial[id] -= aceito[id]
			atual := testhelpers.Estoque(t, database, id)
			assert.Equal(t, estoqueInicial[id], atual)
			assert.GreaterOrEqual(t, atual, 0)
		}
	}
}

func TestListarVendas(t *testing.T) {
	database, w := setup(t)
	ctx := context.Background()
	p := testhelpers.CriarProduto(t, database, "Dipirona 500mg", "10.00", 5, false)

	for _, qtd := range []int{1, 2} {
		s, err := w.Iniciar(ctx, cpfMaria, nil)
		require.NoError(t, err)
		_, err = s.Adicionar(ctx, p.ID, qtd)
		require.NoError(t, err)
		_, err = s.Finalizar(ctx)
		require.NoError(t, err)
	}

	vendas, err := w.ListarVendas(ctx, cpfMaria)
	require.NoError(t, err)
	require.Len(t, vendas, 2)
	assert.Equal(t, "10.00", vendas[0].Valor.StringFixed(2))
	assert.Equal(t, "20.00", vendas[1].Valor.StringFixed(2))
	assert.Len(t, vendas[1].Itens, 1)

	_, err = w.ListarVendas(ctx, "999")
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}
