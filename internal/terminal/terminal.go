// Package terminal é o colaborador de entrada e saída usado pelo menu e pela venda.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal faz uma pergunta e devolve a resposta, ou imprime uma mensagem.
type Terminal interface {
	Prompt(label string) (string, error)
	Print(format string, args ...any)
}

// Console lê linhas de um io.Reader e escreve num io.Writer (normalmente stdin e stdout).
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Prompt devolve io.EOF quando a entrada acaba.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) Print(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Script responde com entradas pré-definidas e guarda tudo que foi impresso. Usado nos testes.
type Script struct {
	Entradas []string
	Saida    []string
	Labels   []string
}

func NewScript(entradas ...string) *Script {
	return &Script{Entradas: entradas}
}

func (s *Script) Prompt(label string) (string, error) {
	s.Labels = append(s.Labels, label)
	if len(s.Entradas) == 0 {
		return "", io.EOF
	}
	v := s.Entradas[0]
	s.Entradas = s.Entradas[1:]
	return strings.TrimSpace(v), nil
}

func (s *Script) Print(format string, args ...any) {
	s.Saida = append(s.Saida, fmt.Sprintf(format, args...))
}

// Impresso junta a saída capturada numa única string.
func (s *Script) Impresso() string {
	return strings.Join(s.Saida, "\n")
}
