package store

import (
	"strconv"
	"strings"
)

func ParseDBTag(value string) (name string, size int, isAuto bool, isKey bool, allowNull bool) {
	tagArr := strings.Split(value, ",")
	if len(tagArr) == 0 {
		return
	}

	checkBool := func(key string, tagarr []string) bool {
		bval := false
		skey := strings.TrimSpace(tagarr[0])
		if strings.EqualFold(skey, key) {
			bval = true
		}

		if len(tagarr) > 1 {
			sval := strings.TrimSpace(tagarr[1])
			if strings.EqualFold(sval, "true") {
				bval = true
			}

			if strings.EqualFold(sval, "false") {
				bval = false
			}
		}

		return bval
	}

	name = strings.TrimSpace(tagArr[0])
	for _, part := range tagArr[1:] {
		for _, v := range strings.Fields(part) {
			varr := strings.Split(v, "=")
			key := strings.TrimSpace(varr[0])

			if strings.EqualFold(key, "auto") {
				isAuto = checkBool("auto", varr)
				continue
			}

			if strings.EqualFold(key, "key") {
				isKey = checkBool("key", varr)
				if isKey {
					allowNull = false
				}
				continue
			}

			if strings.EqualFold(key, "allownull") {
				allowNull = checkBool("allownull", varr) && !isKey
				continue
			}

			if len(varr) > 1 && strings.EqualFold(key, "size") {
				size, _ = strconv.Atoi(varr[1])
			}
		}
	}

	return
}

func Map[In any, Out any](list []In, mapFn func(val In) Out) []Out {
	var newSlice = make([]Out, len(list))
	for i, val := range list {
		newSlice[i] = mapFn(val)
	}

	return newSlice
}
