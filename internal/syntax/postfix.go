package syntax

import "errors"

// ToPostfix converts an infix token stream with explicit Concat tokens into
// postfix order using the shunting-yard algorithm. Unary operators bind
// tightest, then concatenation, then alternation; equal precedence groups
// left to right.
func ToPostfix(infix []Token) ([]Token, error) {
	postfix := make([]Token, 0, len(infix))
	stack := make([]Token, 0, 16)

	for _, t := range infix {
		switch {
		case t.Kind == LeftParen:
			stack = append(stack, t)
		case t.Kind == RightParen:
			for {
				if len(stack) == 0 {
					return nil, newError(ErrUnbalancedGrouping, "", t.Pos, "unmatched )")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == LeftParen {
					break
				}
				postfix = append(postfix, top)
			}
		case t.IsOperator():
			for len(stack) > 0 && stack[len(stack)-1].precedence() >= t.precedence() {
				postfix = append(postfix, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		default:
			postfix = append(postfix, t)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == LeftParen {
			return nil, newError(ErrUnbalancedGrouping, "", top.Pos, "unmatched (")
		}
		postfix = append(postfix, top)
	}

	if err := checkArity(postfix); err != nil {
		return nil, err
	}
	return postfix, nil
}

// checkArity walks the postfix stream the way the automaton builder will
// and fails if an operator would find too few operands on the stack.
func checkArity(postfix []Token) error {
	depth := 0
	for _, t := range postfix {
		switch t.Kind {
		case Literal, Wildcard:
			depth++
		case Star, Plus, Quest:
			if depth < 1 {
				return newError(ErrMissingOperand, "", t.Pos, "%c has nothing to repeat", t.symbol())
			}
		case Concat, Alternate:
			if depth < 2 {
				if t.Kind == Alternate {
					return newError(ErrMissingOperand, "", t.Pos, "empty alternative")
				}
				return newError(ErrMissingOperand, "", t.Pos, "empty group")
			}
			depth--
		}
	}
	if depth > 1 {
		return newError(ErrMissingOperand, "", 0, "%d operands left without an operator", depth)
	}
	return nil
}

// Parse expands pattern and converts it to postfix. Errors are *Error
// values carrying the pattern text.
func Parse(pattern string) ([]Token, error) {
	infix, err := Expand(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(infix)
	if err != nil {
		var serr *Error
		if errors.As(err, &serr) {
			serr.Pattern = pattern
		}
		return nil, err
	}
	return postfix, nil
}
