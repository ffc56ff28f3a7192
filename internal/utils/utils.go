package utils

import "iter"

// TamanhoPagina é o número de registros buscados por consulta nas listagens.
const TamanhoPagina = 50

// Paginar devolve uma sequência preguiçosa que busca os registros página a página.
// Cada range sobre a sequência recomeça do início; um erro encerra a sequência.
func Paginar[T any](tamanho int, buscar func(offset, limite int) ([]T, error)) iter.Seq2[T, error] {
	if tamanho <= 0 {
		tamanho = TamanhoPagina
	}
	return func(yield func(T, error) bool) {
		for offset := 0; ; offset += tamanho {
			pagina, err := buscar(offset, tamanho)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range pagina {
				if !yield(item, nil) {
					return
				}
			}
			if len(pagina) < tamanho {
				return
			}
		}
	}
}

// Coletar consome a sequência inteira, parando no primeiro erro.
func Coletar[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var itens []T
	for item, err := range seq {
		if err != nil {
			return itens, err
		}
		itens = append(itens, item)
	}
	return itens, nil
}
