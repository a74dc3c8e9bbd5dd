package store

// BuildDelete produces DELETE FROM table [WHERE p]. Deleting every row needs
// AllowUnconditional.
func BuildDelete(table string, options ...WriteOption) (Statement, error) {
	opt := &writeOption{}
	for _, op := range options {
		op(opt)
	}

	tb, err := ParseTableName(table)
	if err != nil {
		return Statement{}, err
	}

	if err := checkConditional(KindDelete, opt); err != nil {
		return Statement{}, err
	}

	qry := "DELETE FROM " + tb.FullTableName()
	var args []any
	if !opt.where.IsZero() {
		qry += " WHERE " + opt.where.Text
		args = append(args, opt.where.Args...)
	}

	return newStatement(KindDelete, qry, args, nil)
}
